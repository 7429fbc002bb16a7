package facility

// Static region -> constituency -> facility reference data. The routing
// cascade in the consent flow selects from these tables; the consent service
// re-validates the submitted triple against them.
//
// The table is keyed by region, then constituency. A facility is valid only
// under its own constituency.
var routingTable = map[string]map[string][]string{
	"Ohangwena": {
		"Eenhana":  {"Eenhana clinic", "Eenhana district hospital"},
		"Engela":   {"Engela district hospital", "Engela health centre"},
		"Ondobe":   {"Ondobe clinic"},
		"Okongo":   {"Okongo district hospital", "Okongo clinic"},
	},
	"Khomas": {
		"Windhoek East":    {"Katutura state hospital", "Windhoek central hospital"},
		"Windhoek West":    {"Windhoek central hospital", "Khomasdal clinic"},
		"Katutura Central": {"Katutura health centre", "Katutura state hospital"},
		"Tobias Hainyeko":  {"Okuryangava clinic", "Hakahana clinic"},
	},
	"Omusati": {
		"Outapi":   {"Outapi district hospital", "Outapi clinic"},
		"Okahao":   {"Okahao district hospital"},
		"Tsandi":   {"Tsandi district hospital", "Tsandi clinic"},
		"Oshikuku": {"St Martin's hospital Oshikuku"},
	},
	"Oshana": {
		"Oshakati East":  {"Oshakati intermediate hospital", "Oshakati clinic"},
		"Oshakati West":  {"Oshakati intermediate hospital"},
		"Ondangwa Urban": {"Ondangwa health centre", "Onandjokwe lutheran hospital"},
	},
	"Kavango East": {
		"Rundu Urban": {"Rundu intermediate hospital", "Rundu clinic"},
		"Mashare":     {"Mashare clinic"},
	},
}
