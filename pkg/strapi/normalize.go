package strapi

import "strings"

// Entry is a normalized content entry: attribute name to value, with id
// merged in at top level.
type Entry map[string]any

// TransformData flattens a Strapi {id, attributes} envelope into a flat
// entry. An item lacking either field is returned unchanged (already-flat
// shapes pass through). Relations named in populate are recursively
// normalized, unwrapping a {data: ...} sub-object where present; unlisted
// relations stay in raw form.
func TransformData(item Entry, populate []string) Entry {
	idVal, hasID := item["id"]
	attrsRaw, hasAttrs := item["attributes"]
	if !hasID || !hasAttrs {
		return item
	}
	attrs, ok := attrsRaw.(map[string]any)
	if !ok {
		return item
	}

	out := make(Entry, len(attrs)+1)
	for name, value := range attrs {
		out[name] = value
	}
	out["id"] = idVal

	for _, name := range populate {
		relation, ok := out[name].(map[string]any)
		if !ok {
			continue
		}
		if data, ok := relation["data"].(map[string]any); ok {
			out[name] = map[string]any(TransformData(Entry(data), populate))
		} else {
			out[name] = map[string]any(TransformData(Entry(relation), populate))
		}
	}

	return out
}

// splitPopulate parses a comma-separated population spec into relation
// names. A single name with no commas is a list of one.
func splitPopulate(spec string) []string {
	if spec == "" {
		return nil
	}
	var names []string
	for _, name := range strings.Split(spec, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
