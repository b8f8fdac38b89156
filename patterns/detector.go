package patterns

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// MinConfidence is the floor applied to every detector's output; candidates
// scoring below it are dropped.
const MinConfidence = 0.3

// Sequence miner window-length range, inclusive.
const (
	MinSequenceLength = 4
	MaxSequenceLength = 10
)

// Heuristic scoring constants. The multipliers are ad hoc and uncalibrated;
// they are kept as named constants so they can be tuned in one place.
const (
	// sequence miner boosts
	sequenceLengthBoost  = 0.1 // per window slot beyond 3
	regularIntervalBoost = 0.2
	regularIntervalRatio = 0.3 // gap variance below ratio*mean counts as regular

	// ratio multipliers per detector
	timeRoutineWeight   = 0.8
	directoryWeight     = 1.2
	errorRecoveryWeight = 5.0
	buildTestWeight     = 3.0
	fileWeight          = 2.0
	maintenanceWeight   = 3.0
	vcsCountScale       = 10.0
)

// maxRepresentative bounds the representative command list on every pattern.
const maxRepresentative = 10

// minimum raw occurrence counts before a detector considers a candidate
const (
	minSequenceOccurrences = 2
	minHourBucketSize      = 3
	minRoutineCount        = 3
	minDirectoryCommands   = 5
	minWorkflowRepeats     = 2
	minRecoveryInstances   = 2
	minBuildToolUses       = 3
	minVCSUses             = 5
	minFileOps             = 5
	minMaintenanceOps      = 3
)

var buildTools = []string{"cargo", "npm", "make", "mvn", "gradle", "yarn", "pip", "go"}

var vcsTools = []string{"git", "svn", "hg", "fossil"}

var fileTools = map[string]bool{
	"cp": true, "mv": true, "rm": true, "mkdir": true,
	"touch": true, "chmod": true, "chown": true, "ln": true,
}

var maintenanceTools = map[string]bool{
	"apt": true, "yum": true, "brew": true, "systemctl": true,
	"service": true, "df": true, "du": true, "ps": true, "top": true,
}

// errorFixPairs relates a failing tool to the command that commonly fixes it,
// matched by substring against the raw command text.
var errorFixPairs = []struct {
	errSubstr string
	fixSubstr string
}{
	{"npm", "npm install"},
	{"cargo", "cargo build"},
	{"git", "git checkout"},
	{"docker", "docker start"},
	{"systemctl", "systemctl start"},
}

// Detector runs every pattern detector over one immutable command slice.
// Commands must be ordered oldest first. A Detector is cheap to construct
// and safe to reuse; Detect never mutates the slice.
type Detector struct {
	commands []Command
}

// NewDetector creates a detector over the given command log sample.
func NewDetector(commands []Command) *Detector {
	return &Detector{commands: commands}
}

// Detect runs all detectors and returns the merged pattern list sorted by
// confidence, highest first. Fewer than 3 commands yields an empty result.
// Output is deterministic: the same input slice always produces identical
// results.
func (d *Detector) Detect() []DetectedPattern {
	if len(d.commands) < 3 {
		return nil
	}

	var patterns []DetectedPattern
	patterns = append(patterns, d.detectCommandSequences()...)
	patterns = append(patterns, d.detectTimeRoutines()...)
	patterns = append(patterns, d.detectDirectoryWorkflows()...)
	patterns = append(patterns, d.detectErrorRecovery()...)
	patterns = append(patterns, d.detectBuildTest()...)
	patterns = append(patterns, d.detectVersionControl()...)
	patterns = append(patterns, d.detectFileManipulation()...)
	patterns = append(patterns, d.detectSystemMaintenance()...)

	// NaN confidences compare false and are left where the stable sort
	// finds them instead of panicking.
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Confidence > patterns[j].Confidence
	})

	return patterns
}

// detectCommandSequences finds repeated contiguous sub-sequences of 4 to 10
// commands. Windows are keyed on the lower-cased full command text so that
// workflows built from one tool ("git status" vs "git push") stay distinct.
func (d *Detector) detectCommandSequences() []DetectedPattern {
	var patterns []DetectedPattern

	for length := MinSequenceLength; length <= MaxSequenceLength; length++ {
		if len(d.commands) < length {
			continue
		}

		occurrences := make(map[string][]int)
		var order []string

		for start := 0; start+length <= len(d.commands); start++ {
			key := d.windowKey(start, length)
			if _, seen := occurrences[key]; !seen {
				order = append(order, key)
			}
			occurrences[key] = append(occurrences[key], start)
		}

		for _, key := range order {
			starts := occurrences[key]
			if len(starts) < minSequenceOccurrences {
				continue
			}

			confidence := d.sequenceConfidence(starts, length)
			if confidence < MinConfidence {
				continue
			}

			first := starts[0]
			patterns = append(patterns, DetectedPattern{
				Type:        CommandSequence{Length: length},
				Description: fmt.Sprintf("%d-command workflow pattern", length),
				Confidence:  confidence,
				Frequency:   len(starts),
				Commands:    rawCommands(d.commands[first:first+length], maxRepresentative),
				Metadata:    d.windowMetadata(starts, length),
			})
		}
	}

	return patterns
}

func (d *Detector) windowKey(start, length int) string {
	var b strings.Builder
	for i := start; i < start+length; i++ {
		if i > start {
			b.WriteByte(0x1f)
		}
		b.WriteString(normalize(d.commands[i].Raw))
	}
	return b.String()
}

// sequenceConfidence scores one repeated window: the occurrence ratio over
// all windows of this length, boosted for longer windows and for occurrences
// spaced at regular intervals. Clipped to 1.0.
func (d *Detector) sequenceConfidence(starts []int, length int) float64 {
	totalWindows := len(d.commands) - length + 1
	if totalWindows <= 0 {
		return 0
	}

	base := float64(len(starts)) / float64(totalWindows)
	confidence := base + lengthBoost(length) + intervalBoost(starts)
	return math.Min(confidence, 1.0)
}

func lengthBoost(length int) float64 {
	return float64(length-3) * sequenceLengthBoost
}

// intervalBoost rewards occurrences whose start-index gaps have low variance
// relative to their mean gap.
func intervalBoost(starts []int) float64 {
	if len(starts) < 2 {
		return 0
	}

	gaps := make([]float64, 0, len(starts)-1)
	for i := 1; i < len(starts); i++ {
		gaps = append(gaps, float64(starts[i]-starts[i-1]))
	}

	var sum float64
	for _, g := range gaps {
		sum += g
	}
	mean := sum / float64(len(gaps))

	var variance float64
	for _, g := range gaps {
		variance += (g - mean) * (g - mean)
	}
	variance /= float64(len(gaps))

	if variance < mean*regularIntervalRatio {
		return regularIntervalBoost
	}
	return 0
}

// windowMetadata aggregates over every command in every occurrence window;
// overlapping windows contribute their commands more than once.
func (d *Detector) windowMetadata(starts []int, length int) PatternMetadata {
	var contributing []Command
	for _, start := range starts {
		contributing = append(contributing, d.commands[start:start+length]...)
	}
	return aggregateMetadata(contributing)
}

// detectTimeRoutines finds command types that recur within one hour-of-day
// bucket.
func (d *Detector) detectTimeRoutines() []DetectedPattern {
	var buckets [24][]Command
	for _, cmd := range d.commands {
		hour := cmd.Timestamp.Hour()
		buckets[hour] = append(buckets[hour], cmd)
	}

	var patterns []DetectedPattern
	for hour := 0; hour < 24; hour++ {
		bucket := buckets[hour]
		if len(bucket) < minHourBucketSize {
			continue
		}

		counts := make(map[string]int)
		var order []string
		for _, cmd := range bucket {
			base := normalize(cmd.Base)
			if _, seen := counts[base]; !seen {
				order = append(order, base)
			}
			counts[base]++
		}

		variance := minuteSpread(bucket)

		for _, base := range order {
			count := counts[base]
			if count < minRoutineCount {
				continue
			}

			confidence := float64(count) / float64(len(bucket)) * timeRoutineWeight
			if confidence < MinConfidence {
				continue
			}

			var matching []string
			for _, cmd := range bucket {
				if normalize(cmd.Base) == base && len(matching) < maxRepresentative {
					matching = append(matching, cmd.Raw)
				}
			}

			patterns = append(patterns, DetectedPattern{
				Type:        TimeBasedRoutine{Hour: hour, VarianceMinutes: variance},
				Description: fmt.Sprintf("Daily routine around %d:00", hour),
				Confidence:  confidence,
				Frequency:   count,
				Commands:    matching,
				Metadata:    aggregateMetadata(bucket),
			})
		}
	}

	return patterns
}

// minuteSpread is the standard deviation of minute-of-hour across the
// commands, truncated to whole minutes.
func minuteSpread(commands []Command) int {
	if len(commands) < 2 {
		return 0
	}

	var sum float64
	for _, cmd := range commands {
		sum += float64(cmd.Timestamp.Minute())
	}
	mean := sum / float64(len(commands))

	var variance float64
	for _, cmd := range commands {
		m := float64(cmd.Timestamp.Minute())
		variance += (m - mean) * (m - mean)
	}
	variance /= float64(len(commands))

	return int(math.Sqrt(variance))
}

// detectDirectoryWorkflows finds 3-command runs repeated within a single
// working directory.
func (d *Detector) detectDirectoryWorkflows() []DetectedPattern {
	byDir := make(map[string][]Command)
	var dirOrder []string
	for _, cmd := range d.commands {
		if _, seen := byDir[cmd.Dir]; !seen {
			dirOrder = append(dirOrder, cmd.Dir)
		}
		byDir[cmd.Dir] = append(byDir[cmd.Dir], cmd)
	}

	var patterns []DetectedPattern
	for _, dir := range dirOrder {
		cmds := byDir[dir]
		if len(cmds) < minDirectoryCommands {
			continue
		}

		counts := make(map[string]int)
		sequences := make(map[string][]string)
		var order []string

		for i := 0; i+3 <= len(cmds); i++ {
			seq := []string{
				normalize(cmds[i].Base),
				normalize(cmds[i+1].Base),
				normalize(cmds[i+2].Base),
			}
			key := strings.Join(seq, "\x1f")
			if _, seen := counts[key]; !seen {
				order = append(order, key)
				sequences[key] = seq
			}
			counts[key]++
		}

		for _, key := range order {
			count := counts[key]
			if count < minWorkflowRepeats {
				continue
			}

			confidence := math.Min(float64(count)/float64(len(cmds))*directoryWeight, 1.0)
			if confidence < MinConfidence {
				continue
			}

			patterns = append(patterns, DetectedPattern{
				Type:        DirectorySpecific{Directory: dir},
				Description: fmt.Sprintf("Common workflow in %s", shortenPath(dir)),
				Confidence:  confidence,
				Frequency:   count,
				Commands:    sequences[key],
				Metadata:    aggregateMetadata(cmds),
			})
		}
	}

	return patterns
}

// detectErrorRecovery finds repeating failed-command/fixing-command pairs.
// Adjacent fail/success pairs of related commands are grouped by their
// normalized base names in one pass, then groups with enough instances are
// emitted once each.
func (d *Detector) detectErrorRecovery() []DetectedPattern {
	type pair struct{ err, fix int }

	groups := make(map[string][]pair)
	var order []string

	for i := 1; i < len(d.commands); i++ {
		prev, curr := d.commands[i-1], d.commands[i]
		if prev.ExitCode == 0 || curr.ExitCode != 0 {
			continue
		}
		if !relatedCommands(prev, curr) {
			continue
		}

		key := normalize(prev.Base) + "\x1f" + normalize(curr.Base)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], pair{err: i - 1, fix: i})
	}

	var patterns []DetectedPattern
	for _, key := range order {
		instances := groups[key]
		if len(instances) < minRecoveryInstances {
			continue
		}

		confidence := math.Min(float64(len(instances))/float64(len(d.commands))*errorRecoveryWeight, 1.0)
		if confidence < MinConfidence {
			continue
		}

		first := instances[0]
		errCmd := d.commands[first.err]
		fixCmd := d.commands[first.fix]

		var contributing []Command
		for _, inst := range instances {
			contributing = append(contributing, d.commands[inst.err], d.commands[inst.fix])
		}

		patterns = append(patterns, DetectedPattern{
			Type:        ErrorRecovery{ErrorCommand: errCmd.Raw, FixCommand: fixCmd.Raw},
			Description: "Error recovery pattern detected",
			Confidence:  confidence,
			Frequency:   len(instances),
			Commands:    []string{errCmd.Raw, fixCmd.Raw},
			Metadata:    aggregateMetadata(contributing),
		})
	}

	return patterns
}

// relatedCommands reports whether a fix plausibly addresses the failure:
// the same base command, or a known error/fix pairing matched by substring
// against the raw command text.
func relatedCommands(failed, fixed Command) bool {
	if normalize(failed.Base) == normalize(fixed.Base) {
		return true
	}
	failedRaw := normalize(failed.Raw)
	fixedRaw := normalize(fixed.Raw)
	for _, p := range errorFixPairs {
		if strings.Contains(failedRaw, p.errSubstr) && strings.Contains(fixedRaw, p.fixSubstr) {
			return true
		}
	}
	return false
}

// detectBuildTest finds build tools used with both a test and a build
// subcommand.
func (d *Detector) detectBuildTest() []DetectedPattern {
	var patterns []DetectedPattern

	for _, tool := range buildTools {
		toolCmds := d.commandsWithBase(tool)
		if len(toolCmds) < minBuildToolUses {
			continue
		}

		hasTest, hasBuild := false, false
		for _, cmd := range toolCmds {
			if len(cmd.Args) == 0 {
				continue
			}
			switch normalize(cmd.Args[0]) {
			case "test":
				hasTest = true
			case "build", "compile":
				hasBuild = true
			}
		}
		if !hasTest || !hasBuild {
			continue
		}

		confidence := math.Min(float64(len(toolCmds))/float64(len(d.commands))*buildTestWeight, 1.0)
		if confidence < MinConfidence {
			continue
		}

		patterns = append(patterns, DetectedPattern{
			Type:        BuildTest{Tool: tool},
			Description: fmt.Sprintf("Build-test workflow using %s", tool),
			Confidence:  confidence,
			Frequency:   len(toolCmds),
			Commands:    rawCommands(toolCmds, maxRepresentative),
			Metadata:    aggregateMetadata(toolCmds),
		})
	}

	return patterns
}

// detectVersionControl finds status/add/commit/push workflows per VCS tool.
// Both add and commit must appear before a workflow counts.
func (d *Detector) detectVersionControl() []DetectedPattern {
	var patterns []DetectedPattern

	for _, vcs := range vcsTools {
		vcsCmds := d.commandsWithBase(vcs)
		if len(vcsCmds) < minVCSUses {
			continue
		}

		var score float64
		hasAdd, hasCommit := false, false
		for _, cmd := range vcsCmds {
			if len(cmd.Args) == 0 {
				continue
			}
			switch normalize(cmd.Args[0]) {
			case "status":
				score += 0.2
			case "add":
				hasAdd = true
				score += 0.3
			case "commit":
				hasCommit = true
				score += 0.3
			case "push":
				score += 0.2
			}
		}
		if !hasAdd || !hasCommit {
			continue
		}

		confidence := math.Min(score*(float64(len(vcsCmds))/vcsCountScale), 1.0)
		if confidence < MinConfidence {
			continue
		}

		patterns = append(patterns, DetectedPattern{
			Type:        VersionControl{VCS: vcs},
			Description: fmt.Sprintf("%s workflow pattern", vcs),
			Confidence:  confidence,
			Frequency:   len(vcsCmds),
			Commands:    rawCommands(vcsCmds, maxRepresentative),
			Metadata:    aggregateMetadata(vcsCmds),
		})
	}

	return patterns
}

// detectFileManipulation emits at most one pattern covering all file
// management commands.
func (d *Detector) detectFileManipulation() []DetectedPattern {
	fileCmds := d.commandsInSet(fileTools)
	if len(fileCmds) < minFileOps {
		return nil
	}

	confidence := math.Min(float64(len(fileCmds))/float64(len(d.commands))*fileWeight, 1.0)
	if confidence < MinConfidence {
		return nil
	}

	return []DetectedPattern{{
		Type:        FileManipulation{},
		Description: "File and directory management pattern",
		Confidence:  confidence,
		Frequency:   len(fileCmds),
		Commands:    rawCommands(fileCmds, maxRepresentative),
		Metadata:    aggregateMetadata(fileCmds),
	}}
}

// detectSystemMaintenance emits at most one pattern covering package and
// system tooling usage.
func (d *Detector) detectSystemMaintenance() []DetectedPattern {
	maintCmds := d.commandsInSet(maintenanceTools)
	if len(maintCmds) < minMaintenanceOps {
		return nil
	}

	confidence := math.Min(float64(len(maintCmds))/float64(len(d.commands))*maintenanceWeight, 1.0)
	if confidence < MinConfidence {
		return nil
	}

	return []DetectedPattern{{
		Type:        SystemMaintenance{},
		Description: "System maintenance and monitoring",
		Confidence:  confidence,
		Frequency:   len(maintCmds),
		Commands:    rawCommands(maintCmds, maxRepresentative),
		Metadata:    aggregateMetadata(maintCmds),
	}}
}

func (d *Detector) commandsWithBase(base string) []Command {
	var matched []Command
	for _, cmd := range d.commands {
		if normalize(cmd.Base) == base {
			matched = append(matched, cmd)
		}
	}
	return matched
}

func (d *Detector) commandsInSet(set map[string]bool) []Command {
	var matched []Command
	for _, cmd := range d.commands {
		if set[normalize(cmd.Base)] {
			matched = append(matched, cmd)
		}
	}
	return matched
}
