package tts

import (
	"fmt"
	"strings"

	"github.com/example/go-tencent-tts/internal/config"
	"github.com/example/go-tencent-tts/internal/text"
)

// Language is the PrimaryLanguage request field.
type Language int

const (
	LanguageChinese Language = 1
	LanguageEnglish Language = 2
)

func (l Language) String() string {
	switch l {
	case LanguageChinese:
		return "chinese"
	case LanguageEnglish:
		return "english"
	default:
		return fmt.Sprintf("language(%d)", int(l))
	}
}

// Accepted ranges of the numeric request fields.
const (
	MinSpeed  = -2
	MaxSpeed  = 6
	MinVolume = -10
	MaxVolume = 10
)

// Options carries explicitly supplied values. Nil pointers and empty strings
// mean "unset" and fall through to the configuration layer.
type Options struct {
	SecretID        string
	SecretKey       string
	Region          string
	VoiceType       *int64
	CloneID         string
	Speed           *int
	Volume          *int
	PrimaryLanguage *int
}

// Credentials is the API key pair used to sign requests.
type Credentials struct {
	SecretID  string
	SecretKey string
}

// Params are the fully resolved inputs of one synthesis run.
type Params struct {
	Credentials     Credentials
	Region          string
	Voice           VoiceSelection
	Speed           int
	Volume          int
	PrimaryLanguage Language
}

// ParamError reports a resolved parameter outside its accepted range.
type ParamError struct {
	Name  string
	Value int
	Min   int
	Max   int
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.Name, e.Value, e.Min, e.Max)
}

func (e *ParamError) Unwrap() error { return text.ErrInvalid }

// ResolveParams merges explicit options over cfg. A non-empty clone id from
// either layer selects a Cloned voice and shadows any preset voice type.
func ResolveParams(opts Options, cfg config.Config) (Params, error) {
	creds := config.CredentialsConfig{
		SecretID:  firstNonEmpty(opts.SecretID, cfg.Credentials.SecretID),
		SecretKey: firstNonEmpty(opts.SecretKey, cfg.Credentials.SecretKey),
	}
	if err := config.CheckCredentials(creds); err != nil {
		return Params{}, err
	}

	p := Params{
		Credentials:     Credentials(creds),
		Region:          firstNonEmpty(opts.Region, cfg.Client.Region),
		Speed:           valueOr(opts.Speed, cfg.TTS.Speed),
		Volume:          valueOr(opts.Volume, cfg.TTS.Volume),
		PrimaryLanguage: Language(valueOr(opts.PrimaryLanguage, cfg.TTS.PrimaryLanguage)),
	}

	if cloneID := firstNonEmpty(opts.CloneID, cfg.TTS.FastVoiceType); cloneID != "" {
		p.Voice = Cloned{CloneID: cloneID}
	} else {
		voiceType := valueOr(opts.VoiceType, cfg.TTS.VoiceType)
		if voiceType == 0 {
			voiceType = DefaultVoiceType
		}
		p.Voice = Preset{ID: voiceType}
	}

	if p.Region == "" {
		return Params{}, fmt.Errorf("%w: region is empty; set --region or %s", config.ErrConfiguration, config.EnvRegion)
	}
	if err := checkRange("speed", p.Speed, MinSpeed, MaxSpeed); err != nil {
		return Params{}, err
	}
	if err := checkRange("volume", p.Volume, MinVolume, MaxVolume); err != nil {
		return Params{}, err
	}
	if err := checkRange("primary language", int(p.PrimaryLanguage), int(LanguageChinese), int(LanguageEnglish)); err != nil {
		return Params{}, err
	}

	return p, nil
}

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &ParamError{Name: name, Value: v, Min: lo, Max: hi}
	}

	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}

	return ""
}

func valueOr[T any](explicit *T, fallback T) T {
	if explicit != nil {
		return *explicit
	}

	return fallback
}
