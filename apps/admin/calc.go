package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/fluidlab/core/flow"
)

func (cli *commandLine) calcCmd() *cobra.Command {
	var params flow.FlowParameters

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the minor head loss across a fitting",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return cli.calc(params)
		},
	}
	flags := cmd.Flags()
	flags.Float64Var(&params.FlowRate, "flow-rate", 0, "volumetric flow rate (m³/s)")
	flags.Float64Var(&params.Diameter, "diameter", flow.PipeDiameter, "pipe diameter (m)")
	flags.Float64Var(&params.K, "k", 0, "loss coefficient of the fitting")
	flags.Float64Var(&params.Density, "density", flow.WaterDensity, "fluid density (kg/m³)")
	flags.Float64Var(&params.P1, "p1", flow.AtmosphericPressure, "upstream pressure (Pa)")
	_ = cmd.MarkFlagRequired("flow-rate")
	_ = cmd.MarkFlagRequired("k")
	return cmd
}

func (cli *commandLine) calc(params flow.FlowParameters) error {
	if err := params.Validate(cli.validate); err != nil {
		return errors.Wrap(err, "invalid parameters")
	}
	res := flow.Calculate(params)
	if err := res.Check(); err != nil {
		return errors.Wrap(err, "invalid parameters")
	}
	return cli.writeTable(
		[]string{"velocity (m/s)", "p1 (Pa)", "p2 (Pa)", "pressure drop (Pa)", "length (m)"},
		[][]string{{
			formatFloat(res.Velocity),
			formatFloat(res.P1),
			formatFloat(res.P2),
			formatFloat(res.PressureDrop),
			formatFloat(res.Length),
		}},
	)
}

func (cli *commandLine) referenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reference",
		Short: "Print the measured reference table of the head loss rig",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return cli.reference()
		},
	}
}

func (cli *commandLine) reference() error {
	table := flow.ReferenceTable()
	rows := make([][]string, 0, len(table))
	for _, r := range table {
		rows = append(rows, []string{
			r.Component,
			strconv.FormatFloat(r.FlowRate, 'g', -1, 64),
			fmt.Sprintf("%.4f", r.Velocity),
			strconv.FormatFloat(r.PressureDrop, 'f', -1, 64),
			strconv.FormatFloat(r.Length, 'f', -1, 64),
		})
	}
	return cli.writeTable([]string{"component", "flow rate", "velocity", "pressure drop", "length"}, rows)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
