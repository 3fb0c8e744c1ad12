package core

// Per-domain table descriptors. The token sheet uses month-day-year dates
// while the other three use ISO dates; wallets and fees filter strictly
// after 2024-12-31 where tokens and referrals filter on-or-after 2025-01-01.
// These are properties of the workbook, not runtime configuration.
var (
	TokensSpec = TableSpec{
		Domain:     DomainTokens,
		Sheet:      "Tokens per source",
		DateField:  "Date",
		DateLayout: "01-02-2006",
		Excluded:   []string{"Total"},
		Cutoff:     NewDate(2025, 1, 1),
	}

	WalletsSpec = TableSpec{
		Domain:          DomainWallets,
		Sheet:           "Wallets Created",
		DateField:       "Date",
		DateLayout:      "2006-01-02",
		Cutoff:          NewDate(2024, 12, 31),
		CutoffExclusive: true,
	}

	ReferralsSpec = TableSpec{
		Domain:     DomainReferrals,
		Sheet:      "Referrals",
		DateField:  "Date",
		DateLayout: "2006-01-02",
		Cutoff:     NewDate(2025, 1, 1),
	}

	FeesSpec = TableSpec{
		Domain:          DomainFees,
		Sheet:           "POL Data",
		DateField:       "Date",
		DateLayout:      "2006-01-02",
		Cutoff:          NewDate(2024, 12, 31),
		CutoffExclusive: true,
	}
)

// DomainSpecs lists the four required tables in their canonical order.
// Every one of them must load; a missing sheet is fatal to the pipeline.
var DomainSpecs = []TableSpec{TokensSpec, WalletsSpec, ReferralsSpec, FeesSpec}

// Primary metric names fixed by the workbook schema. Wallet platforms and
// the fee column are declared; token sources and referral campaigns stay
// dynamic.
const (
	WalletAndroid = "Android"
	WalletIOS     = "iOS"
	WalletWeb     = "Web"
	FeeColumn     = "TxnFee(POL)"
)
