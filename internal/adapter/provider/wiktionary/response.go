package wiktionary

// apiResponse is the formatversion=2 body of action=parse.
type apiResponse struct {
	Parse *apiParse `json:"parse"`
	Error *apiError `json:"error"`
}

type apiParse struct {
	Title    string `json:"title"`
	PageID   int64  `json:"pageid"`
	RevID    int64  `json:"revid"`
	Wikitext string `json:"wikitext"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

const codeMissingTitle = "missingtitle"
