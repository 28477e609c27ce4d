package backend

import (
	"github.com/tidwall/gjson"
)

// Valid reports whether the payload is a JSON object.
func (h RawHit) Valid() bool {
	return gjson.Valid(h.JSON) && gjson.Parse(h.JSON).IsObject()
}

// ID returns the first non-empty of "id" and "file_id".
func (h RawHit) ID() string {
	return firstString(h.JSON, "id", "file_id")
}

// Title returns the first non-empty of "title" and "filename".
func (h RawHit) Title() string {
	return firstString(h.JSON, "title", "filename")
}

func (h RawHit) URL() string {
	return firstString(h.JSON, "url")
}

func (h RawHit) SnippetText() string {
	return firstString(h.JSON, "text")
}

func (h RawHit) ContentParts() []ContentPart {
	return PartsFromJSON(gjson.Get(h.JSON, "content"))
}

func (p RawPart) PartText() (string, bool) {
	text := gjson.Get(p.JSON, "text")
	if !text.Exists() {
		return "", false
	}
	return text.String(), true
}

// PartsFromJSON converts a JSON array of chunks into content parts. Plain strings
// become text parts; objects with a type other than "text" and no text field are
// opaque.
func PartsFromJSON(list gjson.Result) []ContentPart {
	if !list.IsArray() {
		return nil
	}

	var parts []ContentPart
	list.ForEach(func(_, value gjson.Result) bool {
		switch {
		case value.Type == gjson.String:
			parts = append(parts, TextPart{Text: value.String()})
		case value.IsObject() && !value.Get("text").Exists():
			parts = append(parts, OpaquePart{Type: value.Get("type").String()})
		case value.IsObject():
			parts = append(parts, RawPart{JSON: value.Raw})
		}
		return true
	})
	return parts
}

// ObjectFromJSON decodes a JSON object into a map; anything else yields nil.
func ObjectFromJSON(value gjson.Result) map[string]any {
	if !value.IsObject() {
		return nil
	}
	obj, ok := value.Value().(map[string]any)
	if !ok {
		return nil
	}
	return obj
}

func firstString(json string, keys ...string) string {
	for _, key := range keys {
		if v := gjson.Get(json, key); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
