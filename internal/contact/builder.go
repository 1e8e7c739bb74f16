package contact

// ChainConfig selects which strategies participate in the resolver chain.
// Provider strategies only join when their key is present and real lookups
// are enabled.
type ChainConfig struct {
	UseProviders bool
	ApolloAPIKey string
	SnovAPIKey   string
	HunterAPIKey string
}

// BuildChain assembles the resolver in precedence order: paid providers
// first, then the website scrape, then name patterns, then role mailboxes.
func BuildChain(cfg ChainConfig, fetcher PageFetcher) *Resolver {
	var strategies []Strategy

	if cfg.UseProviders {
		if cfg.ApolloAPIKey != "" {
			strategies = append(strategies, NewApolloStrategy(cfg.ApolloAPIKey))
		}
		if cfg.SnovAPIKey != "" {
			strategies = append(strategies, NewSnovStrategy(cfg.SnovAPIKey))
		}
		if cfg.HunterAPIKey != "" {
			strategies = append(strategies, NewHunterStrategy(cfg.HunterAPIKey))
		}
	}

	if fetcher != nil {
		strategies = append(strategies, NewWebsiteStrategy(fetcher))
	}
	strategies = append(strategies, PatternStrategy{}, RoleStrategy{})

	return NewResolver(strategies...)
}
