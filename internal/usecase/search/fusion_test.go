package search

import (
	"math"
	"testing"
	"time"

	"github.com/Norte-Development/lexsearch/internal/domain/candidate"
)

func ruling(id string, date time.Time) candidate.Candidate {
	return candidate.NewRuling(id, "title "+id, "text "+id, date, "nacional", "")
}

var day = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestFuseChannels_SumsChannelScores(t *testing.T) {
	// Same document at rank 0 in both channels:
	// 1/(0+5) + 1/(0+5+1) = 0.2 + 0.1666...
	fused := fuseChannels(
		[]candidate.Candidate{ruling("a", day)},
		[]candidate.Candidate{ruling("a", day)},
		50,
	)
	if len(fused) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(fused))
	}
	want := 1.0/5.0 + 1.0/6.0
	if math.Abs(fused[0].TotalScore()-want) > 1e-9 {
		t.Errorf("expected fused score %.6f, got %.6f", want, fused[0].TotalScore())
	}
}

func TestFuseChannels_DropsWeakCandidates(t *testing.T) {
	// A vector-only hit at rank 6 scores 1/11 < 0.1 and is dropped;
	// rank 5 scores exactly 1/10 and survives.
	vector := make([]candidate.Candidate, 7)
	for i := range vector {
		vector[i] = ruling(string(rune('a'+i)), day)
	}
	fused := fuseChannels(vector, nil, 50)
	for _, c := range fused {
		if c.TotalScore() < 0.1 {
			t.Errorf("candidate %s with score %.4f should have been dropped", c.ID(), c.TotalScore())
		}
	}
	if len(fused) != 6 {
		t.Errorf("expected 6 surviving candidates, got %d", len(fused))
	}
}

func TestFuseChannels_SortsByDateThenScore(t *testing.T) {
	older := day.AddDate(-1, 0, 0)
	// "old" ranks first in the vector channel but "new" is more recent.
	fused := fuseChannels(
		[]candidate.Candidate{ruling("old", older), ruling("new", day)},
		nil,
		50,
	)
	if len(fused) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(fused))
	}
	if fused[0].ID() != "new" {
		t.Errorf("expected most recent first, got %s", fused[0].ID())
	}

	// Equal dates: higher fused score first.
	fused = fuseChannels(
		[]candidate.Candidate{ruling("first", day), ruling("second", day)},
		nil,
		50,
	)
	if fused[0].ID() != "first" {
		t.Errorf("expected higher-scored candidate first, got %s", fused[0].ID())
	}
}

func TestFuseChannels_KeepsMaxScorePerChannel(t *testing.T) {
	// Duplicate id within one channel keeps the better (earlier) rank.
	fused := fuseChannels(
		[]candidate.Candidate{ruling("a", day), ruling("a", day)},
		nil,
		50,
	)
	if len(fused) != 1 {
		t.Fatalf("expected deduplication, got %d candidates", len(fused))
	}
	if math.Abs(fused[0].VectorScore()-0.2) > 1e-9 {
		t.Errorf("expected best rank score 0.2, got %.4f", fused[0].VectorScore())
	}
}

func TestFuseChannels_VectorCopyWins(t *testing.T) {
	// When both channels emit the same id, the vector channel's copy is
	// kept and annotated with the full-text score.
	vec := candidate.NewRuling("a", "vector title", "vector text", day, "nacional", "")
	txt := candidate.NewRuling("a", "text title", "text text", day, "nacional", "")
	fused := fuseChannels(
		[]candidate.Candidate{vec},
		[]candidate.Candidate{txt},
		50,
	)
	if len(fused) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(fused))
	}
	if fused[0].Title() != "vector title" {
		t.Errorf("expected vector channel copy to win, got title %q", fused[0].Title())
	}
	if fused[0].FullTextScore() == 0 {
		t.Error("expected full-text score annotation on the vector copy")
	}
}

func TestFuseChannels_Truncates(t *testing.T) {
	vector := make([]candidate.Candidate, 5)
	for i := range vector {
		vector[i] = ruling(string(rune('a'+i)), day)
	}
	fused := fuseChannels(vector, nil, 3)
	if len(fused) != 3 {
		t.Errorf("expected 3 candidates after truncation, got %d", len(fused))
	}
}

func TestFuseChannels_Empty(t *testing.T) {
	if got := fuseChannels(nil, nil, 50); len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}
