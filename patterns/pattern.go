package patterns

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind identifies a pattern variant. The values double as the short names
// accepted by the CLI --type filter and as the JSON "kind" tag.
type Kind string

const (
	KindSequence  Kind = "sequence"
	KindTime      Kind = "time"
	KindDirectory Kind = "directory"
	KindError     Kind = "error"
	KindBuild     Kind = "build"
	KindVCS       Kind = "vcs"
	KindFile      Kind = "file"
	KindSystem    Kind = "system"

	// KindData is declared for forward compatibility (awk/sed/jq style data
	// processing bursts). No detector currently emits it.
	KindData Kind = "data"
)

// Kinds lists every kind a detector can emit, in a fixed order.
func Kinds() []Kind {
	return []Kind{
		KindSequence, KindTime, KindDirectory, KindError,
		KindBuild, KindVCS, KindFile, KindSystem,
	}
}

// ParseKind maps a short name to its Kind.
func ParseKind(name string) (Kind, error) {
	switch Kind(name) {
	case KindSequence, KindTime, KindDirectory, KindError,
		KindBuild, KindVCS, KindFile, KindSystem, KindData:
		return Kind(name), nil
	}
	return "", fmt.Errorf("unknown pattern type %q (expected one of: sequence, time, directory, error, build, vcs, file, system)", name)
}

// PatternType is a closed sum over the pattern variants. Exactly one struct
// type implements it per variant; consumers dispatch with a type switch.
type PatternType interface {
	Kind() Kind
	sealed()
}

// CommandSequence is a repeated contiguous run of Length identical commands.
type CommandSequence struct {
	Length int
}

// TimeBasedRoutine is a command type that recurs at a consistent hour of day.
type TimeBasedRoutine struct {
	Hour            int
	VarianceMinutes int
}

// DirectorySpecific is a short workflow repeated inside one directory.
type DirectorySpecific struct {
	Directory string
}

// ErrorRecovery is a repeating failed-command/fixing-command pair.
type ErrorRecovery struct {
	ErrorCommand string
	FixCommand   string
}

// BuildTest is a build-plus-test workflow around one build tool.
type BuildTest struct {
	Tool string
}

// VersionControl is a status/add/commit/push style workflow for one VCS.
type VersionControl struct {
	VCS string
}

// FileManipulation marks heavy use of file management commands.
type FileManipulation struct{}

// SystemMaintenance marks heavy use of package and system tooling.
type SystemMaintenance struct{}

// DataProcessing is reserved; no detector emits it.
type DataProcessing struct{}

func (CommandSequence) Kind() Kind   { return KindSequence }
func (TimeBasedRoutine) Kind() Kind  { return KindTime }
func (DirectorySpecific) Kind() Kind { return KindDirectory }
func (ErrorRecovery) Kind() Kind     { return KindError }
func (BuildTest) Kind() Kind         { return KindBuild }
func (VersionControl) Kind() Kind    { return KindVCS }
func (FileManipulation) Kind() Kind  { return KindFile }
func (SystemMaintenance) Kind() Kind { return KindSystem }
func (DataProcessing) Kind() Kind    { return KindData }

func (CommandSequence) sealed()   {}
func (TimeBasedRoutine) sealed()  {}
func (DirectorySpecific) sealed() {}
func (ErrorRecovery) sealed()     {}
func (BuildTest) sealed()         {}
func (VersionControl) sealed()    {}
func (FileManipulation) sealed()  {}
func (SystemMaintenance) sealed() {}
func (DataProcessing) sealed()    {}

// PatternMetadata aggregates statistics over every command that contributed
// to a detected pattern.
type PatternMetadata struct {
	FirstSeen     time.Time `json:"first_seen"`
	LastSeen      time.Time `json:"last_seen"`
	Directories   []string  `json:"directories"`
	SuccessRate   float64   `json:"success_rate"`
	AvgDurationMS int64     `json:"avg_duration_ms"`
}

// DetectedPattern is one discovered behavioral pattern.
type DetectedPattern struct {
	Type        PatternType
	Description string
	Confidence  float64
	Frequency   int
	Commands    []string
	Metadata    PatternMetadata
}

// patternTypeJSON is the wire envelope for PatternType. Hour and
// VarianceMinutes are pointers because zero is a valid value for both.
type patternTypeJSON struct {
	Kind            Kind   `json:"kind"`
	Length          int    `json:"length,omitempty"`
	Hour            *int   `json:"hour,omitempty"`
	VarianceMinutes *int   `json:"variance_minutes,omitempty"`
	Directory       string `json:"directory,omitempty"`
	ErrorCommand    string `json:"error_command,omitempty"`
	FixCommand      string `json:"fix_command,omitempty"`
	Tool            string `json:"tool,omitempty"`
	VCS             string `json:"vcs,omitempty"`
}

func encodePatternType(t PatternType) patternTypeJSON {
	switch v := t.(type) {
	case CommandSequence:
		return patternTypeJSON{Kind: v.Kind(), Length: v.Length}
	case TimeBasedRoutine:
		h, m := v.Hour, v.VarianceMinutes
		return patternTypeJSON{Kind: v.Kind(), Hour: &h, VarianceMinutes: &m}
	case DirectorySpecific:
		return patternTypeJSON{Kind: v.Kind(), Directory: v.Directory}
	case ErrorRecovery:
		return patternTypeJSON{Kind: v.Kind(), ErrorCommand: v.ErrorCommand, FixCommand: v.FixCommand}
	case BuildTest:
		return patternTypeJSON{Kind: v.Kind(), Tool: v.Tool}
	case VersionControl:
		return patternTypeJSON{Kind: v.Kind(), VCS: v.VCS}
	case FileManipulation:
		return patternTypeJSON{Kind: v.Kind()}
	case SystemMaintenance:
		return patternTypeJSON{Kind: v.Kind()}
	case DataProcessing:
		return patternTypeJSON{Kind: v.Kind()}
	default:
		return patternTypeJSON{}
	}
}

func decodePatternType(env patternTypeJSON) (PatternType, error) {
	switch env.Kind {
	case KindSequence:
		return CommandSequence{Length: env.Length}, nil
	case KindTime:
		t := TimeBasedRoutine{}
		if env.Hour != nil {
			t.Hour = *env.Hour
		}
		if env.VarianceMinutes != nil {
			t.VarianceMinutes = *env.VarianceMinutes
		}
		return t, nil
	case KindDirectory:
		return DirectorySpecific{Directory: env.Directory}, nil
	case KindError:
		return ErrorRecovery{ErrorCommand: env.ErrorCommand, FixCommand: env.FixCommand}, nil
	case KindBuild:
		return BuildTest{Tool: env.Tool}, nil
	case KindVCS:
		return VersionControl{VCS: env.VCS}, nil
	case KindFile:
		return FileManipulation{}, nil
	case KindSystem:
		return SystemMaintenance{}, nil
	case KindData:
		return DataProcessing{}, nil
	default:
		return nil, fmt.Errorf("unknown pattern kind %q", env.Kind)
	}
}

// patternJSON is the wire form of DetectedPattern.
type patternJSON struct {
	Type        patternTypeJSON `json:"pattern_type"`
	Description string          `json:"description"`
	Confidence  float64         `json:"confidence"`
	Frequency   int             `json:"frequency"`
	Commands    []string        `json:"commands"`
	Metadata    PatternMetadata `json:"metadata"`
}

// MarshalJSON serializes the pattern with its type as a tagged envelope under
// "pattern_type".
func (p DetectedPattern) MarshalJSON() ([]byte, error) {
	return json.Marshal(patternJSON{
		Type:        encodePatternType(p.Type),
		Description: p.Description,
		Confidence:  p.Confidence,
		Frequency:   p.Frequency,
		Commands:    p.Commands,
		Metadata:    p.Metadata,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (p *DetectedPattern) UnmarshalJSON(data []byte) error {
	var pj patternJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	t, err := decodePatternType(pj.Type)
	if err != nil {
		return err
	}
	p.Type = t
	p.Description = pj.Description
	p.Confidence = pj.Confidence
	p.Frequency = pj.Frequency
	p.Commands = pj.Commands
	p.Metadata = pj.Metadata
	return nil
}
