// Package profile decodes the target profile strings carried by compile
// options (e.g. "vs_4_0", "ps_3_0", "ps_4_0_level_9_1", "ps_3_sw") into the
// structured tuple the rest of the front end keys its decisions off of (§6).
package profile

import (
	"strconv"
	"strings"
)

// Kind identifies the shader stage a profile targets.
type Kind uint8

// Recognised shader stage kinds.
const (
	Pixel Kind = iota
	Vertex
	Compute
	Effect
)

func (k Kind) String() string {
	switch k {
	case Pixel:
		return "pixel"
	case Vertex:
		return "vertex"
	case Compute:
		return "compute"
	case Effect:
		return "effect"
	default:
		return "?"
	}
}

// Profile is the decoded form of a profile string: a shader kind, a shader
// model major/minor, an optional feature-level major/minor, and a flag
// marking a software ("_sw") variant.
type Profile struct {
	Kind        Kind
	Major       uint
	Minor       uint
	LevelMajor  uint
	LevelMinor  uint
	HasLevel    bool
	Software    bool
}

var kindPrefixes = map[string]Kind{
	"ps": Pixel,
	"vs": Vertex,
	"cs": Compute,
	"fx": Effect,
}

// Decode parses a profile string into its structured form. It returns false
// if the string does not match the recognised grammar, per §8 scenario 5
// ("unknown string returns null").
func Decode(s string) (Profile, bool) {
	tokens := strings.Split(s, "_")
	//
	if len(tokens) < 2 {
		return Profile{}, false
	}
	//
	kind, ok := kindPrefixes[tokens[0]]
	if !ok {
		return Profile{}, false
	}
	//
	major, err := strconv.ParseUint(tokens[1], 10, 32)
	if err != nil {
		return Profile{}, false
	}
	//
	p := Profile{Kind: kind, Major: uint(major)}
	idx := 2
	//
	if idx < len(tokens) && tokens[idx] == "sw" {
		p.Software = true
		idx++
	} else if idx < len(tokens) {
		minor, err := strconv.ParseUint(tokens[idx], 10, 32)
		if err != nil {
			return Profile{}, false
		}
		//
		p.Minor = uint(minor)
		idx++
	}
	//
	if idx < len(tokens) && tokens[idx] == "level" {
		idx++
		//
		if idx+1 >= len(tokens) {
			return Profile{}, false
		}
		//
		lmaj, err1 := strconv.ParseUint(tokens[idx], 10, 32)
		lmin, err2 := strconv.ParseUint(tokens[idx+1], 10, 32)
		//
		if err1 != nil || err2 != nil {
			return Profile{}, false
		}
		//
		p.LevelMajor, p.LevelMinor, p.HasLevel = uint(lmaj), uint(lmin), true
		idx += 2
	}
	//
	if idx < len(tokens) && tokens[idx] == "sw" {
		p.Software = true
		idx++
	}
	//
	if idx != len(tokens) {
		return Profile{}, false
	}
	//
	return p, true
}
