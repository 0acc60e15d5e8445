package footballapi

type envelope[T any] struct {
	Errors   any    `json:"errors"`
	Results  int    `json:"results"`
	Paging   paging `json:"paging"`
	Response []T    `json:"response"`
}

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type teamItem struct {
	Team struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Code     string `json:"code"`
		National bool   `json:"national"`
	} `json:"team"`
}

type scorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type fixtureTeam struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Winner *bool  `json:"winner"`
}

type fixtureItem struct {
	Fixture struct {
		ID     int64  `json:"id"`
		Date   string `json:"date"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
		Venue struct {
			City string `json:"city"`
			Name string `json:"name"`
		} `json:"venue"`
	} `json:"fixture"`
	League struct {
		Round string `json:"round"`
	} `json:"league"`
	Teams struct {
		Home fixtureTeam `json:"home"`
		Away fixtureTeam `json:"away"`
	} `json:"teams"`
	Goals scorePair `json:"goals"`
	Score struct {
		HalfTime  scorePair `json:"halftime"`
		FullTime  scorePair `json:"fulltime"`
		ExtraTime scorePair `json:"extratime"`
		Penalty   scorePair `json:"penalty"`
	} `json:"score"`
}

type playerItem struct {
	Player struct {
		ID        int64  `json:"id"`
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
		Birth     struct {
			Date *string `json:"date"`
		} `json:"birth"`
	} `json:"player"`
	Statistics []struct {
		Team struct {
			ID int64 `json:"id"`
		} `json:"team"`
		Goals struct {
			Total *int `json:"total"`
		} `json:"goals"`
		Cards struct {
			Yellow    *int `json:"yellow"`
			YellowRed *int `json:"yellowred"`
			Red       *int `json:"red"`
		} `json:"cards"`
	} `json:"statistics"`
}
