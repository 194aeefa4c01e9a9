package icejumper

import "github.com/vovakirdan/ice-jumper/internal/storage"

// RankScore inserts cand into an ordered high-score table.
//
// The candidate goes to the first index whose score it meets or beats; lower
// entries shift down and the table is truncated to limit. A table with free
// slots takes the candidate at the end. The returned index is -1 when the
// candidate did not place.
func RankScore(table []storage.HighScoreEntry, cand storage.HighScoreEntry, limit int) ([]storage.HighScoreEntry, int) {
	if len(table) > limit {
		table = table[:limit]
	}

	index := -1
	for i, e := range table {
		if cand.Score >= e.Score {
			index = i
			break
		}
	}
	if index == -1 {
		if len(table) >= limit {
			return table, -1
		}
		index = len(table)
	}

	out := make([]storage.HighScoreEntry, 0, min(len(table)+1, limit))
	out = append(out, table[:index]...)
	out = append(out, cand)
	out = append(out, table[index:]...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, index
}
