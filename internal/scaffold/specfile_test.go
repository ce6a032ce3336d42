package scaffold

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/classgen/internal/errors"
)

func TestParseSpecFile(t *testing.T) {
	content := `# Widget spec
--baseclass [ Base.h, Other.h ]
--attributes [ public:count:int=0,
               private:name:std::string ]
--functions [ public:getCount:int:[]::[const] ]
`

	got, err := ParseSpecFile(content)
	if err != nil {
		t.Fatalf("ParseSpecFile() error = %v", err)
	}

	want := RawSpec{
		BaseClasses: []string{"Base.h", "Other.h"},
		Attributes:  "public:count:int=0, private:name:std::string",
		Functions:   "public:getCount:int:[]::[const]",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseSpecFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSpecFileEmptySections(t *testing.T) {
	got, err := ParseSpecFile("--baseclass\n--attributes []\n--functions\n")
	if err != nil {
		t.Fatalf("ParseSpecFile() error = %v", err)
	}
	if len(got.BaseClasses) != 0 || got.Attributes != "" || got.Functions != "" {
		t.Errorf("expected empty sections, got %+v", got)
	}
}

func TestParseSpecFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing functions", "--baseclass [] --attributes []"},
		{"out of order", "--attributes [] --baseclass [] --functions []"},
		{"duplicate", "--baseclass [] --attributes [] --functions [] --functions []"},
		{"unknown marker", "--baseclass [] --attrs [] --functions []"},
		{"empty file", "# nothing here\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpecFile(tt.content)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrStructural) {
				t.Errorf("expected structural error, got %v", err)
			}
		})
	}
}
