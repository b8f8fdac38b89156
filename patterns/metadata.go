package patterns

import "strings"

// aggregateMetadata computes supporting statistics over the commands that
// back one pattern. Duplicates are permitted and counted; callers never pass
// an empty slice, but an empty input yields the zero value rather than a
// division by zero.
func aggregateMetadata(commands []Command) PatternMetadata {
	if len(commands) == 0 {
		return PatternMetadata{}
	}

	meta := PatternMetadata{
		FirstSeen: commands[0].Timestamp,
		LastSeen:  commands[0].Timestamp,
	}

	seen := make(map[string]bool)
	successes := 0
	var totalDuration int64

	for _, cmd := range commands {
		if cmd.Timestamp.Before(meta.FirstSeen) {
			meta.FirstSeen = cmd.Timestamp
		}
		if cmd.Timestamp.After(meta.LastSeen) {
			meta.LastSeen = cmd.Timestamp
		}
		if !seen[cmd.Dir] {
			seen[cmd.Dir] = true
			meta.Directories = append(meta.Directories, cmd.Dir)
		}
		if cmd.Succeeded() {
			successes++
		}
		totalDuration += cmd.DurationMS
	}

	meta.SuccessRate = float64(successes) / float64(len(commands))
	meta.AvgDurationMS = totalDuration / int64(len(commands))
	return meta
}

func normalize(s string) string {
	return strings.ToLower(s)
}

// rawCommands returns up to limit raw command strings, in input order.
func rawCommands(commands []Command, limit int) []string {
	if len(commands) < limit {
		limit = len(commands)
	}
	raws := make([]string, 0, limit)
	for _, cmd := range commands[:limit] {
		raws = append(raws, cmd.Raw)
	}
	return raws
}

// shortenPath abbreviates deep paths to their last component for display.
func shortenPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) > 3 {
		return ".../" + parts[len(parts)-1]
	}
	return path
}
