package shader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Field is one optional override in a group update. Set reports whether the
// update names the field at all; unset fields keep their current value.
type Field[T any] struct {
	Value T
	Set   bool
}

// Set returns a field override carrying v.
func Set[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// UnmarshalJSON marks the field as present. A JSON null sets the zero value.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON writes the carried value, or null when unset.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

func (f Field[T]) apply(current T) T {
	if f.Set {
		return f.Value
	}
	return current
}

// FlowFieldUpdate overrides selected flow-field parameters.
type FlowFieldUpdate struct {
	Detail   Field[float64] `json:"detail"`
	Speed    Field[float64] `json:"speed"`
	Strength Field[float64] `json:"strength"`
}

// Apply returns current with the set fields replaced.
func (u FlowFieldUpdate) Apply(current FlowField) FlowField {
	return FlowField{
		Detail:   u.Detail.apply(current.Detail),
		Speed:    u.Speed.apply(current.Speed),
		Strength: u.Strength.apply(current.Strength),
	}
}

// StripesUpdate overrides selected stripe parameters.
type StripesUpdate struct {
	Balance Field[float64] `json:"balance"`
	ColorA  Field[string]  `json:"colorA"`
	Speed   Field[float64] `json:"speed"`
}

// Apply returns current with the set fields replaced.
func (u StripesUpdate) Apply(current Stripes) Stripes {
	return Stripes{
		Balance: u.Balance.apply(current.Balance),
		ColorA:  u.ColorA.apply(current.ColorA),
		Speed:   u.Speed.apply(current.Speed),
	}
}

// SimplexNoiseUpdate overrides selected noise parameters.
type SimplexNoiseUpdate struct {
	Balance  Field[float64] `json:"balance"`
	ColorB   Field[string]  `json:"colorB"`
	Contrast Field[float64] `json:"contrast"`
	Speed    Field[float64] `json:"speed"`
	Visible  Field[bool]    `json:"visible"`
}

// Apply returns current with the set fields replaced.
func (u SimplexNoiseUpdate) Apply(current SimplexNoise) SimplexNoise {
	return SimplexNoise{
		Balance:  u.Balance.apply(current.Balance),
		ColorB:   u.ColorB.apply(current.ColorB),
		Contrast: u.Contrast.apply(current.Contrast),
		Speed:    u.Speed.apply(current.Speed),
		Visible:  u.Visible.apply(current.Visible),
	}
}

// DitherUpdate overrides selected dither parameters.
type DitherUpdate struct {
	ColorA    Field[string]        `json:"colorA"`
	Pattern   Field[DitherPattern] `json:"pattern"`
	Visible   Field[bool]          `json:"visible"`
	PixelSize Field[int]           `json:"pixelSize"`
}

// Apply returns current with the set fields replaced.
func (u DitherUpdate) Apply(current Dither) Dither {
	return Dither{
		ColorA:    u.ColorA.apply(current.ColorA),
		Pattern:   u.Pattern.apply(current.Pattern),
		Visible:   u.Visible.apply(current.Visible),
		PixelSize: u.PixelSize.apply(current.PixelSize),
	}
}

// ImageTextureUpdate overrides selected image parameters. Setting URL to ""
// (or null in JSON) switches the base layer back to stripes.
type ImageTextureUpdate struct {
	URL        Field[string]    `json:"url"`
	ObjectFit  Field[ObjectFit] `json:"objectFit"`
	Brightness Field[float64]   `json:"brightness"`
	Contrast   Field[float64]   `json:"contrast"`
}

// Apply returns current with the set fields replaced.
func (u ImageTextureUpdate) Apply(current ImageTexture) ImageTexture {
	return ImageTexture{
		URL:        u.URL.apply(current.URL),
		ObjectFit:  u.ObjectFit.apply(current.ObjectFit),
		Brightness: u.Brightness.apply(current.Brightness),
		Contrast:   u.Contrast.apply(current.Contrast),
	}
}

// ChromaticAberrationUpdate overrides selected aberration parameters.
type ChromaticAberrationUpdate struct {
	Strength Field[float64] `json:"strength"`
	Angle    Field[float64] `json:"angle"`
}

// Apply returns current with the set fields replaced.
func (u ChromaticAberrationUpdate) Apply(current ChromaticAberration) ChromaticAberration {
	return ChromaticAberration{
		Strength: u.Strength.apply(current.Strength),
		Angle:    u.Angle.apply(current.Angle),
	}
}

// Group names a mergeable parameter group.
type Group string

const (
	GroupFlowField           Group = "flowField"
	GroupStripes             Group = "stripes"
	GroupSimplexNoise        Group = "simplexNoise"
	GroupDither              Group = "dither"
	GroupImageTexture        Group = "imageTexture"
	GroupChromaticAberration Group = "chromaticAberration"
)

// Groups lists the mergeable groups in pipeline order.
func Groups() []Group {
	return []Group{
		GroupFlowField,
		GroupStripes,
		GroupImageTexture,
		GroupSimplexNoise,
		GroupDither,
		GroupChromaticAberration,
	}
}

// ParseGroup resolves a group name, accepting kebab-case aliases such as
// "flow-field" that read better in URLs.
func ParseGroup(name string) (Group, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
	for _, group := range Groups() {
		if strings.ToLower(string(group)) == normalized {
			return group, true
		}
	}
	return "", false
}

// Update is a decoded partial update for one group.
type Update interface {
	Group() Group
	applyTo(Config) Config
}

func (FlowFieldUpdate) Group() Group           { return GroupFlowField }
func (StripesUpdate) Group() Group             { return GroupStripes }
func (SimplexNoiseUpdate) Group() Group        { return GroupSimplexNoise }
func (DitherUpdate) Group() Group              { return GroupDither }
func (ImageTextureUpdate) Group() Group        { return GroupImageTexture }
func (ChromaticAberrationUpdate) Group() Group { return GroupChromaticAberration }

func (u FlowFieldUpdate) applyTo(c Config) Config {
	c.FlowField = u.Apply(c.FlowField)
	return c
}

func (u StripesUpdate) applyTo(c Config) Config {
	c.Stripes = u.Apply(c.Stripes)
	return c
}

func (u SimplexNoiseUpdate) applyTo(c Config) Config {
	c.SimplexNoise = u.Apply(c.SimplexNoise)
	return c
}

func (u DitherUpdate) applyTo(c Config) Config {
	c.Dither = u.Apply(c.Dither)
	return c
}

func (u ImageTextureUpdate) applyTo(c Config) Config {
	c.ImageTexture = u.Apply(c.ImageTexture)
	return c
}

func (u ChromaticAberrationUpdate) applyTo(c Config) Config {
	c.ChromaticAberration = u.Apply(c.ChromaticAberration)
	return c
}

// DecodeUpdate decodes a JSON object of partial values for group. Keys that
// do not belong to the group are rejected so typos do not silently no-op.
func DecodeUpdate(group Group, data []byte) (Update, error) {
	var target Update
	switch group {
	case GroupFlowField:
		target = &FlowFieldUpdate{}
	case GroupStripes:
		target = &StripesUpdate{}
	case GroupSimplexNoise:
		target = &SimplexNoiseUpdate{}
	case GroupDither:
		target = &DitherUpdate{}
	case GroupImageTexture:
		target = &ImageTextureUpdate{}
	case GroupChromaticAberration:
		target = &ChromaticAberrationUpdate{}
	default:
		return nil, fmt.Errorf("unknown shader group %q", group)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("decode %s update: empty body", group)
	}
	if err := checkKeys(target, data); err != nil {
		return nil, fmt.Errorf("decode %s update: %w", group, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return nil, fmt.Errorf("decode %s update: %w", group, err)
	}
	switch u := target.(type) {
	case *FlowFieldUpdate:
		return *u, nil
	case *StripesUpdate:
		return *u, nil
	case *SimplexNoiseUpdate:
		return *u, nil
	case *DitherUpdate:
		return *u, nil
	case *ImageTextureUpdate:
		return *u, nil
	case *ChromaticAberrationUpdate:
		return *u, nil
	}
	return nil, fmt.Errorf("unknown shader group %q", group)
}

// checkKeys requires every key in data to match a json tag of target exactly.
// encoding/json alone folds case, so "PIXELSIZE" would land on pixelSize.
func checkKeys(target any, data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	typ := reflect.TypeOf(target).Elem()
	allowed := make(map[string]struct{}, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		name, _, _ := strings.Cut(typ.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			allowed[name] = struct{}{}
		}
	}
	for key := range raw {
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("json: unknown field %q", key)
		}
	}
	return nil
}
