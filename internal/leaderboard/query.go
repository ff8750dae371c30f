package leaderboard

import (
	"math"
	"strings"
)

// PlayerScores is the per-player view of the board.
type PlayerScores struct {
	Player    string
	BestScore int64
	Scores    []Entry
}

// Stats aggregates the whole board. All fields are zero for an empty board.
type Stats struct {
	TotalScores  int
	TotalPlayers int
	HighestScore int64
	AverageScore int64
	HighestLevel int64
	AverageLevel int64
}

// ClampLimit bounds a requested top size to [1, MaxTopLimit].
func ClampLimit(n int) int {
	return min(max(n, 1), MaxTopLimit)
}

// Top returns the first n entries with n clamped to [1, MaxTopLimit].
func Top(entries []Entry, n int) []Entry {
	return head(entries, ClampLimit(n))
}

// ByPlayer returns the best MaxPlayerEntries entries whose name matches name ignoring case.
func ByPlayer(entries []Entry, name string) PlayerScores {
	name = strings.TrimSpace(name)

	matched := make([]Entry, 0)

	for _, e := range entries {
		if strings.EqualFold(e.Name, name) {
			matched = append(matched, e)
		}
	}

	sortByScore(matched)
	matched = head(matched, MaxPlayerEntries)

	result := PlayerScores{Player: name, Scores: matched}
	if len(matched) > 0 {
		result.BestScore = matched[0].Score
	}

	return result
}

// ComputeStats aggregates entries. Means are rounded half up.
func ComputeStats(entries []Entry) Stats {
	if len(entries) == 0 {
		return Stats{}
	}

	players := make(map[string]struct{}, len(entries))

	var (
		stats              Stats
		scoreSum, levelSum float64
	)

	for _, e := range entries {
		players[e.Name] = struct{}{}
		stats.HighestScore = max(stats.HighestScore, e.Score)
		stats.HighestLevel = max(stats.HighestLevel, e.Level)
		scoreSum += float64(e.Score)
		levelSum += float64(e.Level)
	}

	n := float64(len(entries))
	stats.TotalScores = len(entries)
	stats.TotalPlayers = len(players)
	stats.AverageScore = int64(math.Floor(scoreSum/n + 0.5))
	stats.AverageLevel = int64(math.Floor(levelSum/n + 0.5))

	return stats
}

func head(entries []Entry, n int) []Entry {
	n = min(n, len(entries))
	out := make([]Entry, n)
	copy(out, entries[:n])

	return out
}
