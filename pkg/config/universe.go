package config

// DefaultSymbols returns the built-in tracked universe: NIFTY 50 constituents
// plus a handful of widely traded names. Duplicates are removed at load time
// by the overview aggregator.
func DefaultSymbols() []string {
	nifty50 := []string{
		"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS", "ICICIBANK.NS",
		"HINDUNILVR.NS", "ITC.NS", "SBIN.NS", "BHARTIARTL.NS", "KOTAKBANK.NS",
		"LT.NS", "AXISBANK.NS", "ASIANPAINT.NS", "MARUTI.NS", "SUNPHARMA.NS",
		"TITAN.NS", "BAJFINANCE.NS", "ULTRACEMCO.NS", "NESTLEIND.NS", "WIPRO.NS",
		"ONGC.NS", "NTPC.NS", "POWERGRID.NS", "M&M.NS", "TATAMOTORS.NS",
		"TATASTEEL.NS", "TECHM.NS", "HCLTECH.NS", "INDUSINDBK.NS", "ADANIPORTS.NS",
		"BAJAJFINSV.NS", "COALINDIA.NS", "DRREDDY.NS", "GRASIM.NS", "HEROMOTOCO.NS",
		"HINDALCO.NS", "JSWSTEEL.NS", "DIVISLAB.NS", "BRITANNIA.NS", "EICHERMOT.NS",
		"CIPLA.NS", "SHREECEM.NS", "UPL.NS", "APOLLOHOSP.NS", "TATACONSUM.NS",
		"BAJAJ-AUTO.NS", "SBILIFE.NS", "BPCL.NS", "ADANIENT.NS", "HDFCLIFE.NS",
	}
	popular := []string{
		"YESBANK.NS", "VEDL.NS", "SAIL.NS", "BANKNIFTY.NS", "NIFTY.NS",
		"IDEA.NS", "PNB.NS", "RPOWER.NS", "SUZLON.NS", "ZEEL.NS",
	}
	return append(nifty50, popular...)
}

// DefaultCategories returns the static symbol-to-sector table used by the
// overview aggregator.
func DefaultCategories() map[string][]string {
	return map[string][]string{
		"banking": {"HDFCBANK.NS", "ICICIBANK.NS", "SBIN.NS", "AXISBANK.NS", "KOTAKBANK.NS", "INDUSINDBK.NS"},
		"it":      {"TCS.NS", "INFY.NS", "WIPRO.NS", "HCLTECH.NS", "TECHM.NS"},
		"auto":    {"MARUTI.NS", "TATAMOTORS.NS", "M&M.NS", "BAJAJ-AUTO.NS", "EICHERMOT.NS", "HEROMOTOCO.NS"},
		"pharma":  {"SUNPHARMA.NS", "DRREDDY.NS", "CIPLA.NS", "DIVISLAB.NS", "APOLLOHOSP.NS"},
		"energy":  {"RELIANCE.NS", "ONGC.NS", "BPCL.NS", "NTPC.NS", "POWERGRID.NS", "COALINDIA.NS"},
		"metals":  {"TATASTEEL.NS", "HINDALCO.NS", "JSWSTEEL.NS", "VEDL.NS", "SAIL.NS"},
		"fmcg":    {"HINDUNILVR.NS", "ITC.NS", "NESTLEIND.NS", "BRITANNIA.NS", "TATACONSUM.NS"},
	}
}
