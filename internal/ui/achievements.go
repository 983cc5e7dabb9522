package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// AchievementInfo is the display side of an achievement; ID matches the
// engine registry.
type AchievementInfo struct {
	ID          string
	Title       string
	Description string
	Rarity      Rarity
	Category    string
}

var achievementInfo = map[string]AchievementInfo{
	"first_blood":     {"first_blood", "First Blood", "First objective validated", RarityCommon, "discipline"},
	"getting_started": {"getting_started", "Getting Started", "5 objectives validated", RarityCommon, "discipline"},
	"grinder":         {"grinder", "Grinder", "25 objectives validated", RarityRare, "endurance"},
	"centurion":       {"centurion", "Centurion", "100 objectives validated", RarityLegendary, "endurance"},
	"consistent":      {"consistent", "Consistent", "3 day streak", RarityRare, "discipline"},
	"week_1":          {"week_1", "One Week", "7 day streak", RarityRare, "discipline"},
	"week_2":          {"week_2", "Two Weeks", "14 day streak", RarityRare, "discipline"},
	"perfect_week":    {"perfect_week", "Perfect Weeks", "21 day streak", RarityLegendary, "discipline"},
	"on_fire":         {"on_fire", "On Fire", "3 validations in one day", RarityCommon, "endurance"},
	"level_5":         {"level_5", "Level 5", "Reach level 5", RarityRare, "mental"},
	"level_10":        {"level_10", "Level 10", "Reach level 10", RarityLegendary, "mental"},
	"pushups_100":     {"pushups_100", "Push-up Apprentice", "100 push-ups in total", RarityCommon, "endurance"},
	"squats_100":      {"squats_100", "Squat Apprentice", "100 squats in total", RarityCommon, "endurance"},
	"lunges_100":      {"lunges_100", "Lunge Apprentice", "100 lunges in total", RarityCommon, "endurance"},
	"abs_100":         {"abs_100", "Core Apprentice", "100 crunches in total", RarityCommon, "endurance"},
	"iron_arms":       {"iron_arms", "Iron Arms", "1000 push-ups in total", RarityLegendary, "endurance"},
	"awakening":       {"awakening", "Awakening", "A hidden power awakens", RarityLegendary, "mental"},
	"iron_mind":       {"iron_mind", "Iron Mind", "A mind of steel", RarityLegendary, "mental"},
	"lone_wolf":       {"lone_wolf", "Lone Wolf", "Moving forward alone", RarityLegendary, "discipline"},
	"no_mercy":        {"no_mercy", "No Mercy", "No weakness left", RarityLegendary, "endurance"},
}

// Achievement returns display metadata for id, falling back to the id itself.
func Achievement(id string) AchievementInfo {
	if info, ok := achievementInfo[id]; ok {
		return info
	}
	return AchievementInfo{ID: id, Title: id, Rarity: RarityCommon}
}

func RarityIcon(r Rarity) string {
	switch r {
	case RarityRare:
		return "🥈"
	case RarityLegendary:
		return "🥇"
	default:
		return "🥉"
	}
}

func rarityStyle(r Rarity) lipgloss.Style {
	switch r {
	case RarityRare:
		return Rare
	case RarityLegendary:
		return Gold
	default:
		return Muted
	}
}

func RarityBadge(r Rarity) string {
	return rarityStyle(r).Render(strings.ToUpper(string(r)))
}

type Filter string

const (
	FilterAll      Filter = "all"
	FilterUnlocked Filter = "unlocked"
	FilterLocked   Filter = "locked"
	FilterSecrets  Filter = "secrets"
)

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterUnlocked, FilterLocked, FilterSecrets:
		return f, nil
	default:
		return "", fmt.Errorf("invalid filter %q (expected all|unlocked|locked|secrets)", s)
	}
}

// Keep reports whether an achievement passes f.
func (f Filter) Keep(secret, unlocked bool) bool {
	switch f {
	case FilterUnlocked:
		return unlocked
	case FilterLocked:
		return !unlocked
	case FilterSecrets:
		return secret
	default:
		return true
	}
}

// AchievementCard renders one line for an achievement. Locked secrets are
// masked.
func AchievementCard(id string, secret, unlocked bool) string {
	info := Achievement(id)
	title, desc := info.Title, info.Description
	if secret && !unlocked {
		title, desc = "???", "Secret achievement"
	}

	icon := IconLock
	titleStyle := Muted
	if unlocked {
		icon = RarityIcon(info.Rarity)
		titleStyle = rarityStyle(info.Rarity)
	}
	return fmt.Sprintf("%s %s  %s  %s %s",
		icon,
		titleStyle.Render(title),
		Muted.Render(desc),
		CategoryIcon(info.Category),
		RarityBadge(info.Rarity),
	)
}
