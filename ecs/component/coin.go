package component

// Coin is a pooled credit drop. Active is the collection idempotence guard.
type Coin struct {
	Active bool
	Value  int
}

var CoinComponent = NewComponent[Coin]()
