package main

import (
	"sort"

	"recall/patterns"
)

// CommandCount pairs a base command with its usage count.
type CommandCount struct {
	Base  string `json:"base"`
	Count int    `json:"count"`
}

// HistoryStats summarizes a slice of recorded commands.
type HistoryStats struct {
	TotalCommands  int            `json:"total_commands"`
	UniqueCommands int            `json:"unique_commands"`
	SuccessRate    float64        `json:"success_rate"`
	AvgDurationMS  int64          `json:"avg_duration_ms"`
	TopCommands    []CommandCount `json:"top_commands"`
	HourCounts     [24]int        `json:"hour_counts"`
}

// computeStats derives usage statistics from the command log.
func computeStats(commands []patterns.Command, topN int) HistoryStats {
	stats := HistoryStats{TotalCommands: len(commands)}
	if len(commands) == 0 {
		return stats
	}

	counts := make(map[string]int)
	successes := 0
	var totalDuration int64

	for _, cmd := range commands {
		counts[cmd.Base]++
		if cmd.Succeeded() {
			successes++
		}
		totalDuration += cmd.DurationMS
		stats.HourCounts[cmd.Timestamp.Hour()]++
	}

	stats.UniqueCommands = len(counts)
	stats.SuccessRate = float64(successes) / float64(len(commands))
	stats.AvgDurationMS = totalDuration / int64(len(commands))

	for base, count := range counts {
		stats.TopCommands = append(stats.TopCommands, CommandCount{Base: base, Count: count})
	}
	sort.Slice(stats.TopCommands, func(i, j int) bool {
		if stats.TopCommands[i].Count != stats.TopCommands[j].Count {
			return stats.TopCommands[i].Count > stats.TopCommands[j].Count
		}
		return stats.TopCommands[i].Base < stats.TopCommands[j].Base
	})
	if len(stats.TopCommands) > topN {
		stats.TopCommands = stats.TopCommands[:topN]
	}

	return stats
}
