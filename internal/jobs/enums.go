package jobs

import (
	"encoding/json"
	"strings"
)

// EngagementType describes the contractual form a posting offers.
type EngagementType int

const (
	EngagementUnknown EngagementType = iota
	EngagementEmployment
	EngagementContractB2B
	EngagementFreelance
	EngagementInsideIR35
)

var engagementNames = map[EngagementType]string{
	EngagementUnknown:     "unknown",
	EngagementEmployment:  "employment",
	EngagementContractB2B: "contract_b2b",
	EngagementFreelance:   "freelance",
	EngagementInsideIR35:  "inside_ir35",
}

func (e EngagementType) String() string {
	if name, ok := engagementNames[e]; ok {
		return name
	}
	return "unknown"
}

// ParseEngagementType maps an ingestion string to an EngagementType.
// Unrecognized or empty values resolve to EngagementUnknown.
func ParseEngagementType(s string) EngagementType {
	for typ, name := range engagementNames {
		if name == normalizeEnum(s) {
			return typ
		}
	}
	return EngagementUnknown
}

// RemotePolicy describes how a posting treats remote work.
type RemotePolicy int

const (
	RemoteUnknown RemotePolicy = iota
	RemoteOnSite
	RemoteHybrid
	RemoteFully
	RemoteFriendly
)

var remoteNames = map[RemotePolicy]string{
	RemoteUnknown:  "unknown",
	RemoteOnSite:   "on_site",
	RemoteHybrid:   "hybrid",
	RemoteFully:    "fully_remote",
	RemoteFriendly: "remote_friendly",
}

func (r RemotePolicy) String() string {
	if name, ok := remoteNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseRemotePolicy maps an ingestion string to a RemotePolicy.
// Unrecognized or empty values resolve to RemoteUnknown.
func ParseRemotePolicy(s string) RemotePolicy {
	for policy, name := range remoteNames {
		if name == normalizeEnum(s) {
			return policy
		}
	}
	return RemoteUnknown
}

// SeniorityLevel is an ordered scale. The numeric order is part of the
// contract: filters and scoring compare levels directly.
type SeniorityLevel int

const (
	SeniorityUnknown SeniorityLevel = iota
	SeniorityIntern
	SeniorityJunior
	SeniorityMiddle
	SenioritySenior
	SeniorityLead
	SeniorityArchitect
	SeniorityPrincipal
)

var seniorityNames = map[SeniorityLevel]string{
	SeniorityUnknown:   "unknown",
	SeniorityIntern:    "intern",
	SeniorityJunior:    "junior",
	SeniorityMiddle:    "middle",
	SenioritySenior:    "senior",
	SeniorityLead:      "lead",
	SeniorityArchitect: "architect",
	SeniorityPrincipal: "principal",
}

func (s SeniorityLevel) String() string {
	if name, ok := seniorityNames[s]; ok {
		return name
	}
	return "unknown"
}

// Known reports whether the level carries information. Unknown levels
// pass filters and score neutrally.
func (s SeniorityLevel) Known() bool {
	return s != SeniorityUnknown
}

// ParseSeniorityLevel maps an ingestion string to a SeniorityLevel.
// Unrecognized or empty values resolve to SeniorityUnknown.
func ParseSeniorityLevel(s string) SeniorityLevel {
	for level, name := range seniorityNames {
		if name == normalizeEnum(s) {
			return level
		}
	}
	return SeniorityUnknown
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}

func (e EngagementType) MarshalJSON() ([]byte, error) { return json.Marshal(e.String()) }

func (e *EngagementType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*e = ParseEngagementType(s)
	return nil
}

func (r RemotePolicy) MarshalJSON() ([]byte, error) { return json.Marshal(r.String()) }

func (r *RemotePolicy) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRemotePolicy(s)
	return nil
}

func (s SeniorityLevel) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *SeniorityLevel) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ParseSeniorityLevel(str)
	return nil
}
