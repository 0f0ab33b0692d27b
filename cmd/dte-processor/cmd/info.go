package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/facturatools/dte-processor/internal/format"
	"github.com/facturatools/dte-processor/internal/parser"
)

var infoFormat string

var infoCmd = &cobra.Command{
	Use:   "info <xml>",
	Short: "Show the canonical model of a DTE",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVarP(&infoFormat, "format", "f", "table", "Output format (json, table)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	doc, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}

	if infoFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Tipo:\t%s (%d)\n", doc.TypeLabel, doc.TypeCode)
	fmt.Fprintf(w, "Folio:\t%s\n", doc.Folio)
	fmt.Fprintf(w, "Emisión:\t%s\n", doc.IssueDate)
	fmt.Fprintf(w, "Emisor:\t%s (%s)\n", doc.Issuer.Name, doc.Issuer.RUT)
	fmt.Fprintf(w, "Receptor:\t%s (%s)\n", doc.Recipient.Name, doc.Recipient.RUT)
	fmt.Fprintf(w, "Forma de pago:\t%s\n", doc.PaymentTermsLabel)
	fmt.Fprintf(w, "Neto:\t$ %s\n", format.CLP(doc.NetAmount))
	fmt.Fprintf(w, "Exento:\t$ %s\n", format.CLP(doc.ExemptAmount))
	fmt.Fprintf(w, "IVA:\t$ %s\n", format.CLP(doc.VATAmount))
	fmt.Fprintf(w, "Total:\t$ %s\n", format.CLP(doc.TotalAmount))
	fmt.Fprintf(w, "Items:\t%d\n", len(doc.Items))
	fmt.Fprintf(w, "Referencias:\t%d\n", len(doc.References))
	fmt.Fprintf(w, "Impuestos:\t%d\n", len(doc.Withholding))
	return w.Flush()
}
