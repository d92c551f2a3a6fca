package pdf

import "testing"

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare doi",
			text: "Correspondence: j.doe@uni.edu DOI: 10.1234/jos.2023.001 Received 3 May",
			want: "10.1234/jos.2023.001",
		},
		{
			name: "doi.org url",
			text: "Available at https://doi.org/10.5555/abc.def",
			want: "10.5555/abc.def",
		},
		{
			name: "trailing punctuation stripped",
			text: "see 10.1000/182.",
			want: "10.1000/182",
		},
		{
			name: "no doi",
			text: "Volume 12, Issue 3, pp. 101-115",
			want: "",
		},
		{
			name: "prefix without suffix rejected",
			text: "section 10.1234/ continues",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindDOI(tt.text); got != tt.want {
				t.Errorf("FindDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestLooksLikeHeader(t *testing.T) {
	if !looksLikeHeader("Journal of Obscure Studies") {
		t.Error("journal masthead should be treated as a header")
	}
	if looksLikeHeader("Machine Learning Approaches to Citation Matching") {
		t.Error("article title should not be treated as a header")
	}
}
