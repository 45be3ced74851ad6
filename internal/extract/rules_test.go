package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prowlers/logtracker/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Entry{
		{ID: 12, Locations: []catalog.Location{{Rundown: 1, Level: "A1", Name: "XVR-LO9-TR1"}}},
		{ID: 42, Locations: []catalog.Location{{Rundown: 2, Level: "B1", Name: "AMT-49D"}}},
	})
}

func TestSummaryIDs(t *testing.T) {
	r := NewRules()

	tests := []struct {
		name   string
		line   string
		want   []uint32
		wantOK bool
	}{
		{"two ids", "Logs Read: 2 / 50 | IDs: [10, 20]", []uint32{10, 20}, true},
		{"no spaces", "Logs Read: 3 / 50 | IDs: [1,2,3]", []uint32{1, 2, 3}, true},
		{"non numeric skipped", "Logs Read: 1 / 50 | IDs: [10, abc]", []uint32{10}, true},
		{"closing tag after list", "12:00:01.123 - <color=#C84800>Logs Read: 1 / 50 | IDs: [7]</color>", nil, false},
		{"empty list", "Logs Read: 0 / 50 | IDs: []", nil, true},
		{"trailing whitespace", "info: Logs Read: 1 / 50 | IDs: [99]   ", []uint32{99}, true},
		{"unrelated", "Loading level", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.SummaryIDs(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayName(t *testing.T) {
	r := NewRules()

	tests := []struct {
		line   string
		want   string
		wantOK bool
	}{
		{"Terminal read XVR-LO9-TR1 ok", "XVR-LO9-TR1", true},
		{"AMT-49D", "AMT-49D", true},
		{"ABCD-123456-XYZ trailing", "ABCD-123456-XYZ", true},
		{"AB-CD", "", false},
		{"abc-def-ghi", "", false},
		{"2023-12-22 nothing here", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := r.DisplayName(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelToken(t *testing.T) {
	r := NewRules()

	got, ok := r.LevelToken("GameStateManager.SelectActiveExpedition expedition: Local_32,1,0 seed 123")
	require.True(t, ok)
	assert.Equal(t, "Local_32,1,0", got)

	got, ok = r.LevelToken("SelectActiveExpedition Local_32,1,0 then Local_33,2,1")
	require.True(t, ok)
	assert.Equal(t, "Local_33,2,1", got)

	_, ok = r.LevelToken("Local_32,1,0 without marker")
	assert.False(t, ok)
}

func TestHistoryScan(t *testing.T) {
	r := NewRules()
	h := r.NewHistoryScan(testCatalog())

	for _, line := range []string{
		"boot",
		"Logs Read: 2 / 50 | IDs: [5, 9]",
		"Reading XVR-LO9-TR1",
		"Reading QQQ-UNKNOWN",
		"Reading XVR-LO9-TR1",
	} {
		h.Line(line)
	}

	assert.Equal(t, []uint32{5, 9, 12, 12}, h.IDs())
}

func TestLatestScan_KeepsLastResolvedMatch(t *testing.T) {
	r := NewRules()
	s := r.NewLatestScan(testCatalog())

	for _, line := range []string{
		"SelectActiveExpedition Local_32,1,0",
		"Reading XVR-LO9-TR1",
		"Reading AMT-49D",
		"Reading QQQ-UNKNOWN",
		"SelectActiveExpedition Local_33,2,1",
		"SelectActiveExpedition Local_99,1,0",
	} {
		s.Line(line)
	}

	got := s.Result()
	require.True(t, got.HasID)
	assert.Equal(t, uint32(42), got.ID)
	assert.Equal(t, "R2B2", got.Level)
}

func TestLatestScan_Empty(t *testing.T) {
	s := NewRules().NewLatestScan(testCatalog())
	s.Line("nothing")
	assert.Equal(t, Latest{}, s.Result())
}
