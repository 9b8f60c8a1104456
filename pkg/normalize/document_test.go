package normalize

import (
	"reflect"
	"strings"
	"testing"
)

func TestDocumentRender(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{
			name: "three by three",
			doc:  Document{S: Matrix{{3, 5, 2}, {0, 4, 1}, {0, 0, 6}}},
			want: `{"S":[[3,5,2],[0,4,1],[0,0,6]]}`,
		},
		{
			name: "single cell",
			doc:  Document{S: Matrix{{-1}}},
			want: `{"S":[[-1]]}`,
		},
		{
			name: "nil matrix renders empty array",
			doc:  Document{},
			want: `{"S":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.doc.Render()
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Render() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(`{"S": [[1, 2], [0, 3]]}`))
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	if !reflect.DeepEqual(doc.S, Matrix{{1, 2}, {0, 3}}) {
		t.Errorf("S = %v", doc.S)
	}
}

func TestReadDocumentErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "3 5 2"},
		{"ragged", `{"S": [[1, 2], [3]]}`},
		{"not square", `{"S": [[1, 2, 3], [0, 4, 5]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadDocument(strings.NewReader(tt.input)); err == nil {
				t.Error("ReadDocument() error = nil, want error")
			}
		})
	}
}
