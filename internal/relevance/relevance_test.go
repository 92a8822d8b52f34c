package relevance

import "testing"

func TestRelevant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		body  string
		want  bool
	}{
		{
			name:  "keyword with case number",
			title: "Notice of power of sale",
			body:  "Court File No. CV-24-00012345 regarding default",
			want:  true,
		},
		{
			name:  "keyword with address",
			title: "Mortgage enforcement",
			body:  "Premises at 123 Main Street, Toronto, ON M5V 3A8",
			want:  true,
		},
		{
			name:  "keyword only is too noisy",
			title: "General discussion of mortgage rates",
			body:  "Rates rose again this quarter",
			want:  false,
		},
		{
			name:  "pattern only without keyword",
			title: "Traffic hearing",
			body:  "Case No. TR-24-000991 adjourned",
			want:  false,
		},
		{
			name:  "neither",
			title: "Road closure",
			body:  "Expect delays on the highway",
			want:  false,
		},
		{
			name:  "street fragment with preposition is not an anchor",
			title: "Tax sale announcements",
			body:  "Bidding at 5 King Street closed on Monday pending review",
			want:  false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Relevant(tc.title, tc.body); got != tc.want {
				t.Fatalf("Relevant(%q, %q) = %v, want %v", tc.title, tc.body, got, tc.want)
			}
		})
	}
}
