package michelson

// Data constructors.

type Unit struct {
	dataPrim `michelson:"Unit,0x0b"`
}

type True struct {
	dataPrim `michelson:"True,0x0a"`
}

type False struct {
	dataPrim `michelson:"False,0x03"`
}

// Pair is a right comb of two or more values.
type Pair struct {
	dataPrim `michelson:"Pair,0x07"`
	Values   []Data `michelson:"rest,min=2"`
}

type Left struct {
	dataPrim `michelson:"Left,0x05"`
	Value    Data `michelson:"boxed"`
}

type Right struct {
	dataPrim `michelson:"Right,0x08"`
	Value    Data `michelson:"boxed"`
}

type Some struct {
	dataPrim `michelson:"Some,0x09"`
	Value    Data `michelson:"boxed"`
}

type None struct {
	dataPrim `michelson:"None,0x06"`
}

// Elt is a map or big_map entry.
type Elt struct {
	dataPrim `michelson:"Elt,0x04"`
	Key      Data `michelson:"boxed"`
	Value    Data `michelson:"boxed"`
}

// LambdaRec is a recursive lambda value.
type LambdaRec struct {
	dataPrim `michelson:"Lambda_rec,0x98"`
	Body     Instruction `michelson:"boxed"`
}

// NewPair builds a Pair from two or more values.
func NewPair(first, second Data, rest ...Data) Pair {
	values := make([]Data, 0, 2+len(rest))
	values = append(values, first, second)
	return Pair{Values: append(values, rest...)}
}

func dataPrototypes() []Michelson {
	return []Michelson{
		Unit{}, True{}, False{}, Pair{}, Left{}, Right{}, Some{}, None{}, Elt{}, LambdaRec{},
	}
}
