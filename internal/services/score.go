package services

import "dashformance/leads-api/internal/dto"

// scoreItem is one checklist entry of a qualification category
type scoreItem struct {
	key    string
	points int
}

// scoreCategory is a capped group of qualification items
type scoreCategory struct {
	name  string
	max   int
	items []scoreItem
}

var scoreCategories = []scoreCategory{
	{name: "visualization", max: 25, items: []scoreItem{{"usesRender", 10}, {"usesVideo360", 8}, {"usesSalesImg", 7}}},
	{name: "maturity", max: 20, items: []scoreItem{{"hasWebsite", 6}, {"hasLPs", 7}, {"hasDigitalMats", 7}}},
	{name: "structure", max: 15, items: []scoreItem{{"multipleProjects", 6}, {"teamVisible", 5}, {"institutionalComm", 4}}},
	{name: "scale", max: 15, items: []scoreItem{{"multipleCities", 6}, {"portfolioHistory", 5}, {"continuousComm", 4}}},
	{name: "financial", max: 15, items: []scoreItem{{"highStandardVisual", 6}, {"investBranding", 5}, {"activeAds", 4}}},
	{name: "techOpenness", max: 10, items: []scoreItem{{"interactiveLinks", 4}, {"digitalTools", 3}, {"cxFocus", 3}}},
}

// CalculateScore returns the 0-100 qualification score of a lead.
// Leads with extra_info.qualification use the category board, the rest a
// simpler presence-based score.
func CalculateScore(lead *dto.Lead) int {
	if qual, ok := lead.ExtraInfo["qualification"].(map[string]interface{}); ok {
		return qualificationScore(qual, lead.WebsiteURL != nil && *lead.WebsiteURL != "")
	}

	score := 0
	if lead.InstagramURL != nil && *lead.InstagramURL != "" {
		score += 5
	}
	if lead.WebsiteURL != nil && *lead.WebsiteURL != "" {
		score += 8
	}
	if lead.RenderQuality != nil {
		switch *lead.RenderQuality {
		case "GOOD":
			score += 15
		case "MEDIUM":
			score += 7
		}
	}
	return min(score, 100)
}

func qualificationScore(qual map[string]interface{}, hasWebsite bool) int {
	if truthy(qual["absoluteStar"]) {
		return 100
	}

	score := 0
	for _, cat := range scoreCategories {
		group, _ := qual[cat.name].(map[string]interface{})
		sub := 0
		for _, item := range cat.items {
			on := truthy(group[item.key])
			if cat.name == "maturity" && item.key == "hasWebsite" && hasWebsite {
				on = true
			}
			if on {
				sub += item.points
			}
		}
		score += min(sub, cat.max)
	}
	return min(score, 100)
}

func truthy(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}
