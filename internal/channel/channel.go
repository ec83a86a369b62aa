// Package channel is the registry of supported sales channels. Each channel
// carries its mapping table and title column as data, so the store and the
// handlers stay generic instead of one copy per channel.
package channel

import "strings"

type Channel struct {
	Key         string // route segment, also the JSON key prefix ("amazonTitle")
	Table       string // per-channel mapping table
	TitleColumn string // unique raw-title column inside Table
}

var all = []Channel{
	{Key: "amazon", Table: "amazon_product_mappings", TitleColumn: "amazon_title"},
	{Key: "rakuten", Table: "rakuten_product_mappings", TitleColumn: "rakuten_title"},
	{Key: "yahoo", Table: "yahoo_product_mappings", TitleColumn: "yahoo_title"},
	{Key: "mercari", Table: "mercari_product_mappings", TitleColumn: "mercari_title"},
	{Key: "base", Table: "base_product_mappings", TitleColumn: "base_title"},
	{Key: "qoo10", Table: "qoo10_product_mappings", TitleColumn: "qoo10_title"},
	{Key: "tiktok", Table: "tiktok_product_mappings", TitleColumn: "tiktok_title"},
}

// Parse resolves a route segment to a channel, case-insensitively.
func Parse(s string) (Channel, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range all {
		if c.Key == s {
			return c, true
		}
	}
	return Channel{}, false
}

// All returns the registered channels in declaration order.
func All() []Channel {
	out := make([]Channel, len(all))
	copy(out, all)
	return out
}

// Keys returns the route segments of all channels, for error messages.
func Keys() []string {
	out := make([]string, len(all))
	for i, c := range all {
		out[i] = c.Key
	}
	return out
}

// TitleKey is the channel-prefixed JSON field the dashboards send on
// learning writes, e.g. "amazonTitle".
func (c Channel) TitleKey() string { return c.Key + "Title" }
