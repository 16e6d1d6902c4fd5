package model

// Evidence represents one web search result retrieved for a claim
type Evidence struct {
	Title   string `json:"title"`          // Result title
	Snippet string `json:"snippet"`        // Content snippet, HTML stripped
	URL     string `json:"url"`            // Source URL
	Rank    int    `json:"rank"`           // Provider relevance rank (0 = best); never re-ranked
	Dead    bool   `json:"dead,omitempty"` // Set by optional link validation when the URL is unreachable
}

// LiveCount returns how many evidence entries passed link validation
// (or all of them when validation was not run).
func LiveCount(evidence []Evidence) int {
	n := 0
	for _, ev := range evidence {
		if !ev.Dead {
			n++
		}
	}
	return n
}
