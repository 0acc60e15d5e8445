package team

var flagsByName = map[string]string{
	"Albania":             "🇦🇱",
	"Argentina":           "🇦🇷",
	"Australia":           "🇦🇺",
	"Austria":             "🇦🇹",
	"Belgium":             "🇧🇪",
	"Brazil":              "🇧🇷",
	"Cameroon":            "🇨🇲",
	"Canada":              "🇨🇦",
	"Croatia":             "🇭🇷",
	"Czech Republic":      "🇨🇿",
	"Czechia":             "🇨🇿",
	"Denmark":             "🇩🇰",
	"Ecuador":             "🇪🇨",
	"England":             "🏴󠁧󠁢󠁥󠁮󠁧󠁿",
	"Finland":             "🇫🇮",
	"France":              "🇫🇷",
	"Georgia":             "🇬🇪",
	"Germany":             "🇩🇪",
	"Ghana":               "🇬🇭",
	"Greece":              "🇬🇷",
	"Hungary":             "🇭🇺",
	"Iceland":             "🇮🇸",
	"Iran":                "🇮🇷",
	"Italy":               "🇮🇹",
	"Japan":               "🇯🇵",
	"Mexico":              "🇲🇽",
	"Morocco":             "🇲🇦",
	"Netherlands":         "🇳🇱",
	"North Macedonia":     "🇲🇰",
	"Northern Ireland":    "🇬🇧",
	"Norway":              "🇳🇴",
	"Poland":              "🇵🇱",
	"Portugal":            "🇵🇹",
	"Qatar":               "🇶🇦",
	"Republic of Ireland": "🇮🇪",
	"Romania":             "🇷🇴",
	"Russia":              "🇷🇺",
	"Saudi Arabia":        "🇸🇦",
	"Scotland":            "🏴󠁧󠁢󠁳󠁣󠁴󠁿",
	"Senegal":             "🇸🇳",
	"Serbia":              "🇷🇸",
	"Slovakia":            "🇸🇰",
	"Slovenia":            "🇸🇮",
	"South Korea":         "🇰🇷",
	"Spain":               "🇪🇸",
	"Sweden":              "🇸🇪",
	"Switzerland":         "🇨🇭",
	"Tunisia":             "🇹🇳",
	"Turkey":              "🇹🇷",
	"Türkiye":             "🇹🇷",
	"Ukraine":             "🇺🇦",
	"Uruguay":             "🇺🇾",
	"USA":                 "🇺🇸",
	"Wales":               "🏴󠁧󠁢󠁷󠁬󠁳󠁿",
}
