package emoji

import "sync/atomic"

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":       {"❌", "[ERR]"},
	"warning":     {"⚠️", "[WRN]"},
	"info":        {"ℹ️", "[INF]"},
	"success":     {"✅", "[OK]"},
	"search":      {"🔍", "[?]"},
	"keyword":     {"🏷️", "[KW]"},
	"idea":        {"💡", "[IDEA]"},
	"gem":         {"💎", "[GEM]"},
	"trend_high":  {"🔥", "[HIGH]"},
	"trend_mid":   {"📈", "[MID]"},
	"trend_new":   {"🌱", "[NEW]"},
	"video":       {"🎬", "[VID]"},
	"filters":     {"🎛️", "[FLT]"},
	"statistics":  {"📊", "[STATS]"},
	"rocket":      {"🚀", "[GO]"},
	"target":      {"🎯", "[>]"},
	"watch":       {"👀", "[WATCH]"},
	"loading":     {"⏳", "[...]"},
	"config":      {"📄", "[CFG]"},
	"help":        {"❓", "[?]"},
	"door":        {"🚪", "[EXIT]"},
	"number":      {"🔢", "[#]"},
	"small_chan":  {"🐣", "[SMALL]"},
	"all_formats": {"🎞️", "[ALL]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on the global no-emoji setting
func GetEmoji(key string) string {
	return Lookup(key, !emojiDisabled.Load())
}

// Lookup returns the emoji for key, or its text fallback when enabled is false
func Lookup(key string, enabled bool) string {
	mapping, exists := emojiMap[key]
	if !exists {
		return "[?]"
	}
	if enabled {
		return mapping[0]
	}
	return mapping[1]
}

// ForTrend returns the symbol for a trend class ("high", "medium", "emerging")
func ForTrend(class string, enabled bool) string {
	switch class {
	case "high":
		return Lookup("trend_high", enabled)
	case "medium":
		return Lookup("trend_mid", enabled)
	default:
		return Lookup("trend_new", enabled)
	}
}
