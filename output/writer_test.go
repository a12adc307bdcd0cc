package output

import "testing"

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		format  string
		want    string
		wantErr bool
	}{
		{name: "explicit format wins", path: "catalog.csv", format: "json", want: "json"},
		{name: "explicit xlsx aliases excel", path: "catalog.bin", format: "xlsx", want: "xlsx"},
		{name: "csv extension", path: "catalog.csv", want: "csv"},
		{name: "xlsx extension", path: "catalog.xlsx", want: "excel"},
		{name: "json extension", path: "catalog.json", want: "json"},
		{name: "uppercase extension", path: "CATALOG.JSON", want: "json"},
		{name: "unknown extension", path: "catalog.pdf", wantErr: true},
		{name: "no extension", path: "catalog", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectFormat(tc.path, tc.format)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got format %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected format %q, got %q", tc.want, got)
			}
		})
	}
}

func TestWriterForFormat(t *testing.T) {
	csvWriter, err := WriterForFormat("csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := csvWriter.(*CSVWriter); !ok {
		t.Fatalf("expected CSVWriter, got %T", csvWriter)
	}

	excelWriter, err := WriterForFormat("xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := excelWriter.(*ExcelWriter); !ok {
		t.Fatalf("expected ExcelWriter, got %T", excelWriter)
	}

	jsonWriter, err := WriterForFormat("JSON")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := jsonWriter.(*JSONWriter); !ok {
		t.Fatalf("expected JSONWriter, got %T", jsonWriter)
	}

	if _, err := WriterForFormat("yaml"); err == nil {
		t.Fatalf("expected error for unsupported format, got nil")
	}
}
