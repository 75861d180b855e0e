package types

// SpiceHoldings itemizes a spice total into token denominations.
type SpiceHoldings struct {
	Tens  int `json:"tens"`
	Fives int `json:"fives"`
	Twos  int `json:"twos"`
	Ones  int `json:"ones"`
}

// DivideSpice breaks a spice total into 10/5/2/1 denominations.
func DivideSpice(total int) SpiceHoldings {
	if total < 0 {
		total = 0
	}
	h := SpiceHoldings{}
	h.Tens = total / 10
	total -= h.Tens * 10
	h.Fives = total / 5
	total -= h.Fives * 5
	h.Twos = total / 2
	total -= h.Twos * 2
	h.Ones = total
	return h
}

// Total returns the aggregate spice value of the holdings.
func (h SpiceHoldings) Total() int {
	return h.Tens*10 + h.Fives*5 + h.Twos*2 + h.Ones
}
