package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/x/cash"
	"github.com/saftindustries/sca/x/escrow"
	"github.com/saftindustries/sca/x/sigs"
	"github.com/saftindustries/sca/x/utils"
)

// Stack returns the handler processing every submitted transaction. Metrics
// are collected only when reg is not nil.
//
// The savepoint sits above the signature check, so a failed transaction
// does not consume the signer's sequence.
func Stack(bank cash.Controller, reg prometheus.Registerer) (sca.Handler, error) {
	var metrics *utils.Metrics
	if reg != nil {
		var err error
		if metrics, err = utils.NewMetrics(reg, InstructionName); err != nil {
			return nil, err
		}
	}
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewSavepoint(),
		sigs.NewDecorator(),
	).WithHandler(
		escrow.NewHandler(sigs.Authenticate{}, bank),
	), nil
}

// InstructionName returns the name of the instruction a transaction carries.
func InstructionName(tx sca.Tx) string {
	ins := tx.GetInstruction()
	if len(ins) == 0 {
		return "empty"
	}
	op := escrow.Opcode(ins[0])
	if _, ok := op.PayloadSize(); !ok {
		return "unknown"
	}
	return op.String()
}
