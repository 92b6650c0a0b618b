package sentiment

func loadPositiveWords() map[string]bool {
	return wordSet(
		"gain", "gains", "gained", "surge", "surged", "surges", "rally",
		"rallies", "rallied", "strong", "stronger", "strongest", "growth",
		"grow", "grows", "growing", "profit", "profits", "profitable",
		"beat", "beats", "upgrade", "upgraded", "outperform", "outperforms",
		"positive", "optimistic", "optimism", "bullish", "record", "recovery",
		"recovers", "recovered", "improve", "improves", "improved",
		"improvement", "rise", "rises", "rising", "rose", "jump", "jumps",
		"jumped", "soar", "soars", "soared", "boost", "boosts", "boosted",
		"high", "higher", "momentum", "robust", "resilient", "expansion",
		"expands", "dividend", "buyback", "breakthrough", "success",
		"successful", "winner", "winners", "upbeat", "exceeds", "exceeded",
	)
}

func loadNegativeWords() map[string]bool {
	return wordSet(
		"loss", "losses", "lost", "fall", "falls", "falling", "fell", "drop",
		"drops", "dropped", "decline", "declines", "declined", "weak",
		"weaker", "weakest", "slump", "slumps", "slumped", "plunge",
		"plunges", "plunged", "crash", "crashes", "crashed", "downgrade",
		"downgraded", "underperform", "underperforms", "negative",
		"pessimistic", "pessimism", "bearish", "miss", "misses", "missed",
		"concern", "concerns", "concerned", "risk", "risks", "risky",
		"uncertainty", "uncertain", "fear", "fears", "selloff", "debt",
		"default", "fraud", "probe", "lawsuit", "penalty", "fine", "fined",
		"low", "lower", "cautious", "caution", "warning", "warns", "warned",
		"cuts", "cut", "layoff", "layoffs", "bankruptcy", "recession",
		"inflation", "slowdown", "slows", "slowed", "struggle", "struggles",
		"struggling", "trouble", "troubled", "volatile", "turmoil",
	)
}

func loadNegators() map[string]bool {
	return wordSet("not", "no", "never", "without", "barely", "hardly")
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
