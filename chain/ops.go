// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

// Message opcodes. Every inbound entity message starts with a 32-bit
// big-endian opcode; OpNone marks a plain value transfer with no body.
const (
	OpNone uint32 = 0x00000000

	// Factory
	OpDeploy uint32 = 0x4637289b // signed deploy {signature, voucher}
	OpTopUp  uint32 = 0x370fec51 // balance top-up, no state transition

	// Item
	OpItemDeploy    uint32 = 0x299a3e15 // factory → item initialization
	OpStartAuction  uint32 = 0x487a8e81
	OpCancelAuction uint32 = 0x371638ae
	OpTransfer      uint32 = 0x5fcc3d14

	// Notifications (outbound only)
	OpOutbidNotification uint32 = 0x557cea20
	OpOwnershipAssigned  uint32 = 0x05138d91
)
