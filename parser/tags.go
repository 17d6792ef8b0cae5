package parser

import (
	"github.com/ava12/pseudo/tree"
)

// Rule tags of the pseudocode grammar.
const (
	Program tree.Tag = iota
	Statement
	Body
	Block
	BlockItem
	Assignment
	Print
	PrintNext
	Read
	ReadNext
	If
	Else
	While
	DoWhile
	RepeatUntil
	For
	ForStep

	Expression
	LogicalOr
	SubsequentLogicalOr
	LogicalAnd
	SubsequentLogicalAnd
	BitwiseOr
	SubsequentBitwiseOr
	BitwiseXor
	SubsequentBitwiseXor
	BitwiseAnd
	SubsequentBitwiseAnd
	NotEqual
	SubsequentNotEqual
	Equal
	SubsequentEqual
	LessThan
	SubsequentLessThan
	LessOrEqual
	SubsequentLessOrEqual
	GreaterThan
	SubsequentGreaterThan
	GreaterOrEqual
	SubsequentGreaterOrEqual
	ShiftLeft
	SubsequentShiftLeft
	ShiftRight
	SubsequentShiftRight
	Sum
	SubsequentSum
	Subtract
	SubsequentSubtract
	Multiply
	SubsequentMultiply
	Divide
	SubsequentDivide
	Modulus
	SubsequentModulus
	Power
	SubsequentPower
	Unary
	UnaryMinus
	UnaryPlus
	LogicalNot
	BitwiseNot
	Primary
	Group
	Floor
)

// TagNames maps rule tags to names used in syntax trees and error messages.
var TagNames = map[tree.Tag]string{
	Program:     "Program",
	Statement:   "Statement",
	Body:        "Body",
	Block:       "Block",
	BlockItem:   "BlockItem",
	Assignment:  "Assignment",
	Print:       "Print",
	PrintNext:   "PrintNext",
	Read:        "Read",
	ReadNext:    "ReadNext",
	If:          "If",
	Else:        "Else",
	While:       "While",
	DoWhile:     "DoWhile",
	RepeatUntil: "RepeatUntil",
	For:         "For",
	ForStep:     "ForStep",

	Expression: "Expression",
	Unary:      "Unary",
	UnaryMinus: "UnaryMinus",
	UnaryPlus:  "UnaryPlus",
	LogicalNot: "LogicalNot",
	BitwiseNot: "BitwiseNot",
	Primary:    "Primary",
	Group:      "Group",
	Floor:      "Floor",
}

func init() {
	for _, l := range binaryLevels {
		TagNames[l.tag] = l.name
		TagNames[l.subsequent] = "Subsequent" + l.name
	}
}
