package tts

import "fmt"

// CloneVoiceType is the VoiceType the API expects whenever a one-sentence
// voice clone (FastVoiceType) is used.
const CloneVoiceType int64 = 200000000

// DefaultVoiceType is the preset voice used when nothing else is configured.
const DefaultVoiceType int64 = 502003

// VoiceSelection is either a Preset or a Cloned voice. The interface is
// sealed so the VoiceType and FastVoiceType request fields can only be
// derived together.
type VoiceSelection interface {
	// VoiceType is the value sent in the VoiceType request field.
	VoiceType() int64
	// FastVoiceType is the clone id, or "" for preset voices.
	FastVoiceType() string
	String() string
	isVoiceSelection()
}

// Preset selects one of the service's built-in voices.
type Preset struct {
	ID int64
}

func (p Preset) VoiceType() int64      { return p.ID }
func (p Preset) FastVoiceType() string { return "" }
func (p Preset) String() string        { return fmt.Sprintf("preset:%d", p.ID) }
func (Preset) isVoiceSelection()       {}

// Cloned selects a voice produced by one-sentence voice cloning.
type Cloned struct {
	CloneID string
}

func (c Cloned) VoiceType() int64      { return CloneVoiceType }
func (c Cloned) FastVoiceType() string { return c.CloneID }
func (c Cloned) String() string        { return "clone:" + c.CloneID }
func (Cloned) isVoiceSelection()       {}
