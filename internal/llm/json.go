package llm

// FirstJSONObject returns the first balanced top-level JSON object in s.
// Models without a native JSON response mode occasionally wrap the object
// in prose or code fences; callers validate the extracted payload against
// a schema, so the worst case is a schema failure, never a silent guess.
func FirstJSONObject(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, ch := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
			if depth == 0 && start != -1 {
				return s[start : i+1]
			}
		}
	}
	return s
}
