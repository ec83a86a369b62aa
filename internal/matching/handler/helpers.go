package handler

import (
	"regexp"
	"strconv"
	"strings"

	"channel-matcher/internal/matching/model"
	"channel-matcher/internal/utils"
)

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

var rxHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey folds a column header for comparison: lowercase, symbols
// and repeated spaces collapsed.
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u3000", " ").Replace(s)
	s = rxHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveKey finds the real column for a wanted name. Supports "a|b|c"
// alternatives, exact match first, then normalized and contains matching
// for composite headers like 商品名（必須）.
func resolveKey(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	var nWantAll []string
	for _, a := range alts {
		nWantAll = append(nWantAll, normHeaderKey(a))
	}

	bestKey := ""
	bestScore := 0
	for k := range rec {
		nk := normHeaderKey(k)
		for _, n := range nWantAll {
			if nk == n {
				return k
			}
		}
		score := 0
		for _, n := range nWantAll {
			if n != "" && (strings.Contains(nk, n) || strings.Contains(n, nk)) {
				if len(n) > score {
					score = len(n)
				}
			}
		}
		if score > bestScore {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}

// mapRows converts parsed file records into batch rows. Default column
// names cover the common channel export headers; the form fields override
// them. Rows without a title are dropped.
func mapRows(maps []map[string]string, titleKey, qtyKey string) []model.Row {
	if strings.TrimSpace(titleKey) == "" {
		titleKey = "title|商品名|商品タイトル|item name"
	}
	if strings.TrimSpace(qtyKey) == "" {
		qtyKey = "quantity|qty|数量|個数"
	}

	rows := make([]model.Row, 0, len(maps))
	for _, rec := range maps {
		tk := resolveKey(rec, titleKey)
		qk := resolveKey(rec, qtyKey)

		title := strings.TrimSpace(rec[tk])
		if title == "" {
			continue
		}
		qty, _ := utils.ParseQty(rec[qk])
		rows = append(rows, model.Row{Title: title, Quantity: qty})
	}
	return rows
}
