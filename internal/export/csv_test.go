package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/talgya/playersim/internal/engine"
)

func TestWriteEvents(t *testing.T) {
	var buf bytes.Buffer
	cw, err := NewCSVWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	at := time.Date(2024, 3, 4, 9, 30, 15, 0, time.UTC)
	err = cw.WriteEvents([]engine.Event{
		{Time: at, Type: engine.EventAcquisition, PlayerID: "p1", PlayerType: "casual"},
		{Time: at, Type: engine.EventPurchase, PlayerID: "p1", PlayerType: "casual", SessionID: 4, Amount: 12},
		{Time: at, Type: engine.EventStageEnd, PlayerID: "p1", PlayerType: "casual", SessionID: 4, Score: 77},
	})
	if err != nil {
		t.Fatal(err)
	}
	if cw.Rows() != 3 {
		t.Fatalf("rows = %d", cw.Rows())
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		Header,
		{"2024-03-04 09:30:15.000", "acquisition", "p1", "casual", "", "", ""},
		{"2024-03-04 09:30:15.000", "purchase", "p1", "casual", "4", "12", ""},
		{"2024-03-04 09:30:15.000", "stage_end", "p1", "casual", "4", "", "77"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if strings.Join(rows[i], ",") != strings.Join(want[i], ",") {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	cw, path, err := Create(filepath.Join(dir, "events"), false)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(path) != ".csv" {
		t.Fatalf("path = %s, want .csv extension", path)
	}
	if err := cw.Close(); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Create(path, false); !errors.Is(err, ErrExists) {
		t.Fatalf("err = %v, want ErrExists", err)
	}

	cw, _, err = Create(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := cw.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != strings.Join(Header, ",") {
		t.Fatalf("overwritten file = %q", data)
	}
}
