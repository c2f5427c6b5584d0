package michelson

import (
	"github.com/wippyai/michelson/number"
)

// Instructions. Types suffixed with Instr share a name with a data constructor or literal.

type Pack struct {
	instrPrim `michelson:"PACK,0x0c"`
	Metadata
}

type Unpack struct {
	instrPrim `michelson:"UNPACK,0x0d"`
	Metadata
	Type Type `michelson:"boxed"`
}

type Blake2b struct {
	instrPrim `michelson:"BLAKE2B,0x0e"`
	Metadata
}

type Sha256 struct {
	instrPrim `michelson:"SHA256,0x0f"`
	Metadata
}

type Sha512 struct {
	instrPrim `michelson:"SHA512,0x10"`
	Metadata
}

type Abs struct {
	instrPrim `michelson:"ABS,0x11"`
	Metadata
}

type Add struct {
	instrPrim `michelson:"ADD,0x12"`
	Metadata
}

type Amount struct {
	instrPrim `michelson:"AMOUNT,0x13"`
	Metadata
}

type And struct {
	instrPrim `michelson:"AND,0x14"`
	Metadata
}

type Balance struct {
	instrPrim `michelson:"BALANCE,0x15"`
	Metadata
}

type Car struct {
	instrPrim `michelson:"CAR,0x16"`
	Metadata
}

type Cdr struct {
	instrPrim `michelson:"CDR,0x17"`
	Metadata
}

type CheckSignature struct {
	instrPrim `michelson:"CHECK_SIGNATURE,0x18"`
	Metadata
}

type Compare struct {
	instrPrim `michelson:"COMPARE,0x19"`
	Metadata
}

type Concat struct {
	instrPrim `michelson:"CONCAT,0x1a"`
	Metadata
}

type Cons struct {
	instrPrim `michelson:"CONS,0x1b"`
	Metadata
}

// CreateContract originates a contract from an inline script of parameter, storage and code sections.
type CreateContract struct {
	instrPrim `michelson:"CREATE_CONTRACT,0x1d"`
	Metadata
	Script Sequence `michelson:"boxed"`
}

type ImplicitAccount struct {
	instrPrim `michelson:"IMPLICIT_ACCOUNT,0x1e"`
	Metadata
}

// Dip runs Body below the top N stack elements, or below the top one when N is absent.
type Dip struct {
	instrPrim `michelson:"DIP,0x1f"`
	N         *number.Natural `michelson:"optional"`
	Body      Instruction     `michelson:"boxed"`
}

type Drop struct {
	instrPrim `michelson:"DROP,0x20"`
	N         *number.Natural `michelson:"optional"`
}

type Dup struct {
	instrPrim `michelson:"DUP,0x21"`
	Metadata
	N *number.Natural `michelson:"optional"`
}

type Ediv struct {
	instrPrim `michelson:"EDIV,0x22"`
	Metadata
}

type EmptyMap struct {
	instrPrim `michelson:"EMPTY_MAP,0x23"`
	Metadata
	Key   Type `michelson:"boxed"`
	Value Type `michelson:"boxed"`
}

type EmptySet struct {
	instrPrim `michelson:"EMPTY_SET,0x24"`
	Metadata
	Elem Type `michelson:"boxed"`
}

type Eq struct {
	instrPrim `michelson:"EQ,0x25"`
	Metadata
}

type Exec struct {
	instrPrim `michelson:"EXEC,0x26"`
	Metadata
}

type FailWith struct {
	instrPrim `michelson:"FAILWITH,0x27"`
}

type Ge struct {
	instrPrim `michelson:"GE,0x28"`
	Metadata
}

type Get struct {
	instrPrim `michelson:"GET,0x29"`
	Metadata
	N *number.Natural `michelson:"optional"`
}

type Gt struct {
	instrPrim `michelson:"GT,0x2a"`
	Metadata
}

type HashKey struct {
	instrPrim `michelson:"HASH_KEY,0x2b"`
	Metadata
}

type If struct {
	instrPrim `michelson:"IF,0x2c"`
	Then      Instruction `michelson:"boxed"`
	Else      Instruction `michelson:"boxed"`
}

type IfCons struct {
	instrPrim `michelson:"IF_CONS,0x2d"`
	Then      Instruction `michelson:"boxed"`
	Else      Instruction `michelson:"boxed"`
}

type IfLeft struct {
	instrPrim `michelson:"IF_LEFT,0x2e"`
	Then      Instruction `michelson:"boxed"`
	Else      Instruction `michelson:"boxed"`
}

type IfNone struct {
	instrPrim `michelson:"IF_NONE,0x2f"`
	Then      Instruction `michelson:"boxed"`
	Else      Instruction `michelson:"boxed"`
}

type IntInstr struct {
	instrPrim `michelson:"INT,0x30"`
	Metadata
}

type Lambda struct {
	instrPrim `michelson:"LAMBDA,0x31"`
	Metadata
	Param  Type        `michelson:"boxed"`
	Return Type        `michelson:"boxed"`
	Body   Instruction `michelson:"boxed"`
}

type Le struct {
	instrPrim `michelson:"LE,0x32"`
	Metadata
}

type LeftInstr struct {
	instrPrim `michelson:"LEFT,0x33"`
	Metadata
	Right Type `michelson:"boxed"`
}

type Loop struct {
	instrPrim `michelson:"LOOP,0x34"`
	Body      Instruction `michelson:"boxed"`
}

type Lsl struct {
	instrPrim `michelson:"LSL,0x35"`
	Metadata
}

type Lsr struct {
	instrPrim `michelson:"LSR,0x36"`
	Metadata
}

type Lt struct {
	instrPrim `michelson:"LT,0x37"`
	Metadata
}

type Map struct {
	instrPrim `michelson:"MAP,0x38"`
	Metadata
	Body Instruction `michelson:"boxed"`
}

type Mem struct {
	instrPrim `michelson:"MEM,0x39"`
	Metadata
}

type Mul struct {
	instrPrim `michelson:"MUL,0x3a"`
	Metadata
}

type Neg struct {
	instrPrim `michelson:"NEG,0x3b"`
	Metadata
}

type Neq struct {
	instrPrim `michelson:"NEQ,0x3c"`
	Metadata
}

type Nil struct {
	instrPrim `michelson:"NIL,0x3d"`
	Metadata
	Elem Type `michelson:"boxed"`
}

type NoneInstr struct {
	instrPrim `michelson:"NONE,0x3e"`
	Metadata
	Elem Type `michelson:"boxed"`
}

type Not struct {
	instrPrim `michelson:"NOT,0x3f"`
	Metadata
}

type Now struct {
	instrPrim `michelson:"NOW,0x40"`
	Metadata
}

type Or struct {
	instrPrim `michelson:"OR,0x41"`
	Metadata
}

type PairInstr struct {
	instrPrim `michelson:"PAIR,0x42"`
	Metadata
	N *number.Natural `michelson:"optional"`
}

type Push struct {
	instrPrim `michelson:"PUSH,0x43"`
	Metadata
	Type  Type `michelson:"boxed"`
	Value Data `michelson:"boxed"`
}

type RightInstr struct {
	instrPrim `michelson:"RIGHT,0x44"`
	Metadata
	Left Type `michelson:"boxed"`
}

type Size struct {
	instrPrim `michelson:"SIZE,0x45"`
	Metadata
}

type SomeInstr struct {
	instrPrim `michelson:"SOME,0x46"`
	Metadata
}

type Source struct {
	instrPrim `michelson:"SOURCE,0x47"`
	Metadata
}

type Sender struct {
	instrPrim `michelson:"SENDER,0x48"`
	Metadata
}

// Self pushes the current contract. A field annotation selects the entrypoint.
type Self struct {
	instrPrim `michelson:"SELF,0x49"`
	Metadata
}

type Sub struct {
	instrPrim `michelson:"SUB,0x4b"`
	Metadata
}

type Swap struct {
	instrPrim `michelson:"SWAP,0x4c"`
}

type TransferTokens struct {
	instrPrim `michelson:"TRANSFER_TOKENS,0x4d"`
	Metadata
}

type SetDelegate struct {
	instrPrim `michelson:"SET_DELEGATE,0x4e"`
	Metadata
}

type UnitInstr struct {
	instrPrim `michelson:"UNIT,0x4f"`
	Metadata
}

type Update struct {
	instrPrim `michelson:"UPDATE,0x50"`
	Metadata
	N *number.Natural `michelson:"optional"`
}

type Xor struct {
	instrPrim `michelson:"XOR,0x51"`
	Metadata
}

type Iter struct {
	instrPrim `michelson:"ITER,0x52"`
	Body      Instruction `michelson:"boxed"`
}

type LoopLeft struct {
	instrPrim `michelson:"LOOP_LEFT,0x53"`
	Body      Instruction `michelson:"boxed"`
}

type Address struct {
	instrPrim `michelson:"ADDRESS,0x54"`
	Metadata
}

type Contract struct {
	instrPrim `michelson:"CONTRACT,0x55"`
	Metadata
	Param Type `michelson:"boxed"`
}

type IsNat struct {
	instrPrim `michelson:"ISNAT,0x56"`
	Metadata
}

type Cast struct {
	instrPrim `michelson:"CAST,0x57"`
	Metadata
	Type Type `michelson:"boxed"`
}

type Rename struct {
	instrPrim `michelson:"RENAME,0x58"`
	Metadata
}

type Slice struct {
	instrPrim `michelson:"SLICE,0x6f"`
	Metadata
}

type Dig struct {
	instrPrim `michelson:"DIG,0x70"`
	N         number.Natural `michelson:"arg"`
}

type Dug struct {
	instrPrim `michelson:"DUG,0x71"`
	N         number.Natural `michelson:"arg"`
}

type EmptyBigMap struct {
	instrPrim `michelson:"EMPTY_BIG_MAP,0x72"`
	Metadata
	Key   Type `michelson:"boxed"`
	Value Type `michelson:"boxed"`
}

type Apply struct {
	instrPrim `michelson:"APPLY,0x73"`
	Metadata
}

type ChainID struct {
	instrPrim `michelson:"CHAIN_ID,0x75"`
	Metadata
}

type Level struct {
	instrPrim `michelson:"LEVEL,0x76"`
	Metadata
}

type SelfAddress struct {
	instrPrim `michelson:"SELF_ADDRESS,0x77"`
	Metadata
}

type Never struct {
	instrPrim `michelson:"NEVER,0x79"`
}

type Unpair struct {
	instrPrim `michelson:"UNPAIR,0x7a"`
	Metadata
	N *number.Natural `michelson:"optional"`
}

type VotingPower struct {
	instrPrim `michelson:"VOTING_POWER,0x7b"`
	Metadata
}

type TotalVotingPower struct {
	instrPrim `michelson:"TOTAL_VOTING_POWER,0x7c"`
	Metadata
}

type Keccak struct {
	instrPrim `michelson:"KECCAK,0x7d"`
	Metadata
}

type Sha3 struct {
	instrPrim `michelson:"SHA3,0x7e"`
	Metadata
}

type PairingCheck struct {
	instrPrim `michelson:"PAIRING_CHECK,0x7f"`
	Metadata
}

type SaplingEmptyState struct {
	instrPrim `michelson:"SAPLING_EMPTY_STATE,0x85"`
	Metadata
	MemoSize number.Natural `michelson:"arg"`
}

type SaplingVerifyUpdate struct {
	instrPrim `michelson:"SAPLING_VERIFY_UPDATE,0x86"`
	Metadata
}

type ReadTicket struct {
	instrPrim `michelson:"READ_TICKET,0x89"`
	Metadata
}

type SplitTicket struct {
	instrPrim `michelson:"SPLIT_TICKET,0x8a"`
	Metadata
}

type JoinTickets struct {
	instrPrim `michelson:"JOIN_TICKETS,0x8b"`
	Metadata
}

type GetAndUpdate struct {
	instrPrim `michelson:"GET_AND_UPDATE,0x8c"`
	Metadata
}

type OpenChest struct {
	instrPrim `michelson:"OPEN_CHEST,0x8f"`
	Metadata
}

type View struct {
	instrPrim `michelson:"VIEW,0x90"`
	Metadata
	Name   string `michelson:"arg"`
	Return Type   `michelson:"boxed"`
}

// Constant refers to a registered global constant by its expr hash. It can
// stand for code, data or a type, so it is a member of every union.
type Constant struct {
	instrPrim `michelson:"constant,0x92"`
	Hash      string `michelson:"arg"`
}

func (Constant) typ() {}

type SubMutez struct {
	instrPrim `michelson:"SUB_MUTEZ,0x93"`
	Metadata
}

type MinBlockTime struct {
	instrPrim `michelson:"MIN_BLOCK_TIME,0x95"`
	Metadata
}

// Emit emits an event. The tag is a field annotation and the payload type is optional.
type Emit struct {
	instrPrim `michelson:"EMIT,0x97"`
	Metadata
	Type Type `michelson:"optional"`
}

type LambdaRecInstr struct {
	instrPrim `michelson:"LAMBDA_REC,0x99"`
	Metadata
	Param  Type        `michelson:"boxed"`
	Return Type        `michelson:"boxed"`
	Body   Instruction `michelson:"boxed"`
}

type Ticket struct {
	instrPrim `michelson:"TICKET,0x9a"`
	Metadata
}

type BytesInstr struct {
	instrPrim `michelson:"BYTES,0x9b"`
	Metadata
}

type Nat struct {
	instrPrim `michelson:"NAT,0x9c"`
	Metadata
}

func instructionPrototypes() []Michelson {
	return []Michelson{
		Pack{}, Unpack{}, Blake2b{}, Sha256{}, Sha512{}, Abs{}, Add{}, Amount{}, And{},
		Balance{}, Car{}, Cdr{}, CheckSignature{}, Compare{}, Concat{}, Cons{},
		CreateContract{}, ImplicitAccount{}, Dip{}, Drop{}, Dup{}, Ediv{}, EmptyMap{},
		EmptySet{}, Eq{}, Exec{}, FailWith{}, Ge{}, Get{}, Gt{}, HashKey{}, If{}, IfCons{},
		IfLeft{}, IfNone{}, IntInstr{}, Lambda{}, Le{}, LeftInstr{}, Loop{}, Lsl{}, Lsr{},
		Lt{}, Map{}, Mem{}, Mul{}, Neg{}, Neq{}, Nil{}, NoneInstr{}, Not{}, Now{}, Or{},
		PairInstr{}, Push{}, RightInstr{}, Size{}, SomeInstr{}, Source{}, Sender{}, Self{},
		Sub{}, Swap{}, TransferTokens{}, SetDelegate{}, UnitInstr{}, Update{}, Xor{}, Iter{},
		LoopLeft{}, Address{}, Contract{}, IsNat{}, Cast{}, Rename{}, Slice{}, Dig{}, Dug{},
		EmptyBigMap{}, Apply{}, ChainID{}, Level{}, SelfAddress{}, Never{}, Unpair{},
		VotingPower{}, TotalVotingPower{}, Keccak{}, Sha3{}, PairingCheck{},
		SaplingEmptyState{}, SaplingVerifyUpdate{}, ReadTicket{}, SplitTicket{}, JoinTickets{},
		GetAndUpdate{}, OpenChest{}, View{}, Constant{}, SubMutez{}, MinBlockTime{}, Emit{},
		LambdaRecInstr{}, Ticket{}, BytesInstr{}, Nat{},
	}
}
