package michelson

// Script sections. A contract script is a sequence of parameter, storage and code,
// optionally followed by views.

type ParameterSection struct {
	sectionPrim `michelson:"parameter,0x00"`
	Metadata
	Type Type `michelson:"boxed"`
}

type StorageSection struct {
	sectionPrim `michelson:"storage,0x01"`
	Metadata
	Type Type `michelson:"boxed"`
}

type CodeSection struct {
	sectionPrim `michelson:"code,0x02"`
	Body        Instruction `michelson:"boxed"`
}

// ViewSection declares an on-chain view: name, input type, output type and code.
type ViewSection struct {
	sectionPrim `michelson:"view,0x91"`
	Name        string      `michelson:"arg"`
	Param       Type        `michelson:"boxed"`
	Return      Type        `michelson:"boxed"`
	Body        Instruction `michelson:"boxed"`
}

func sectionPrototypes() []Michelson {
	return []Michelson{
		ParameterSection{}, StorageSection{}, CodeSection{}, ViewSection{},
	}
}
