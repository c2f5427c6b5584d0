package michelson

import (
	"github.com/wippyai/michelson/number"
)

// Type constructors.

type BoolType struct {
	typePrim `michelson:"bool,0x59"`
	Metadata
}

type ContractType struct {
	typePrim `michelson:"contract,0x5a"`
	Metadata
	Param Type `michelson:"boxed"`
}

type IntType struct {
	typePrim `michelson:"int,0x5b"`
	Metadata
}

type KeyType struct {
	typePrim `michelson:"key,0x5c"`
	Metadata
}

type KeyHashType struct {
	typePrim `michelson:"key_hash,0x5d"`
	Metadata
}

type LambdaType struct {
	typePrim `michelson:"lambda,0x5e"`
	Metadata
	Param  Type `michelson:"boxed"`
	Return Type `michelson:"boxed"`
}

type ListType struct {
	typePrim `michelson:"list,0x5f"`
	Metadata
	Elem Type `michelson:"boxed"`
}

type MapType struct {
	typePrim `michelson:"map,0x60"`
	Metadata
	Key   Type `michelson:"boxed"`
	Value Type `michelson:"boxed"`
}

type BigMapType struct {
	typePrim `michelson:"big_map,0x61"`
	Metadata
	Key   Type `michelson:"boxed"`
	Value Type `michelson:"boxed"`
}

type NatType struct {
	typePrim `michelson:"nat,0x62"`
	Metadata
}

type OptionType struct {
	typePrim `michelson:"option,0x63"`
	Metadata
	Elem Type `michelson:"boxed"`
}

type OrType struct {
	typePrim `michelson:"or,0x64"`
	Metadata
	Left  Type `michelson:"boxed"`
	Right Type `michelson:"boxed"`
}

// PairType is a right comb of two or more types.
type PairType struct {
	typePrim `michelson:"pair,0x65"`
	Metadata
	Types []Type `michelson:"rest,min=2"`
}

type SetType struct {
	typePrim `michelson:"set,0x66"`
	Metadata
	Elem Type `michelson:"boxed"`
}

type SignatureType struct {
	typePrim `michelson:"signature,0x67"`
	Metadata
}

type StringType struct {
	typePrim `michelson:"string,0x68"`
	Metadata
}

type BytesType struct {
	typePrim `michelson:"bytes,0x69"`
	Metadata
}

type MutezType struct {
	typePrim `michelson:"mutez,0x6a"`
	Metadata
}

type TimestampType struct {
	typePrim `michelson:"timestamp,0x6b"`
	Metadata
}

type UnitType struct {
	typePrim `michelson:"unit,0x6c"`
	Metadata
}

type OperationType struct {
	typePrim `michelson:"operation,0x6d"`
	Metadata
}

type AddressType struct {
	typePrim `michelson:"address,0x6e"`
	Metadata
}

type ChainIDType struct {
	typePrim `michelson:"chain_id,0x74"`
	Metadata
}

type NeverType struct {
	typePrim `michelson:"never,0x78"`
	Metadata
}

type Bls12381G1Type struct {
	typePrim `michelson:"bls12_381_g1,0x80"`
	Metadata
}

type Bls12381G2Type struct {
	typePrim `michelson:"bls12_381_g2,0x81"`
	Metadata
}

type Bls12381FrType struct {
	typePrim `michelson:"bls12_381_fr,0x82"`
	Metadata
}

type SaplingStateType struct {
	typePrim `michelson:"sapling_state,0x83"`
	Metadata
	MemoSize number.Natural `michelson:"arg"`
}

type TicketType struct {
	typePrim `michelson:"ticket,0x87"`
	Metadata
	Elem Type `michelson:"boxed"`
}

type ChestType struct {
	typePrim `michelson:"chest,0x8d"`
	Metadata
}

type ChestKeyType struct {
	typePrim `michelson:"chest_key,0x8e"`
	Metadata
}

type TxRollupL2AddressType struct {
	typePrim `michelson:"tx_rollup_l2_address,0x94"`
	Metadata
}

type SaplingTransactionType struct {
	typePrim `michelson:"sapling_transaction,0x96"`
	Metadata
	MemoSize number.Natural `michelson:"arg"`
}

func typePrototypes() []Michelson {
	return []Michelson{
		BoolType{}, ContractType{}, IntType{}, KeyType{}, KeyHashType{}, LambdaType{},
		ListType{}, MapType{}, BigMapType{}, NatType{}, OptionType{}, OrType{}, PairType{},
		SetType{}, SignatureType{}, StringType{}, BytesType{}, MutezType{}, TimestampType{},
		UnitType{}, OperationType{}, AddressType{}, ChainIDType{}, NeverType{},
		Bls12381G1Type{}, Bls12381G2Type{}, Bls12381FrType{}, SaplingStateType{}, TicketType{},
		ChestType{}, ChestKeyType{}, TxRollupL2AddressType{}, SaplingTransactionType{},
	}
}
