package domain

import "testing"

func TestPostInputValidate(t *testing.T) {
	groupID := 3
	tests := []struct {
		name      string
		input     PostInput
		wantField string
	}{
		{"valid", PostInput{Text: "hello"}, ""},
		{"valid with group", PostInput{Text: "hello", GroupID: &groupID}, ""},
		{"empty text", PostInput{Text: ""}, "text"},
		{"whitespace only text", PostInput{Text: "   \n\t"}, "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.input.Validate()
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("Validate() = %v, want no errors", errs)
				}
				return
			}
			if len(errs) != 1 || errs[0].Field != tt.wantField {
				t.Fatalf("Validate() = %v, want one error on %q", errs, tt.wantField)
			}
		})
	}
}

func TestCommentInputValidate(t *testing.T) {
	if errs := (&CommentInput{Text: "nice post"}).Validate(); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no errors", errs)
	}
	errs := (&CommentInput{Text: " "}).Validate()
	if len(errs) != 1 || errs[0].Field != "text" {
		t.Fatalf("Validate() = %v, want one error on text", errs)
	}
}
