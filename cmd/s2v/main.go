// Package main provides the CLI entry point for s2v-go.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/s2v-go/pkg/s2v"
	"github.com/ukaji3/s2v-go/pkg/s2v/models"
)

// encodingEnv overrides the default of --encoding.
const encodingEnv = "S2V_ENCODING"

var (
	encodingName string
	verbose      bool
	storageKind  storageValue
	sheetSize    sizeValue
	contentType  string
	xlsxSheet    string

	logger *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	storageKind = "dense"
	sheetSize = sizeValue{rows: 10, cols: 10}

	rootCmd := &cobra.Command{
		Use:   "s2v",
		Short: "Create, edit and convert S2V spreadsheets",
		Long: `s2v-go manages fixed-size spreadsheets stored in the S2V format:
one line per row, cells separated by ';', formula arguments escaped with ','.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	rootCmd.PersistentFlags().StringVar(&encodingName, "encoding", os.Getenv(encodingEnv), "Character encoding of S2V files (default UTF-8, env "+encodingEnv+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	rootCmd.PersistentFlags().Var(&storageKind, "storage", "Storage backing: dense or sparse")

	newCmd := &cobra.Command{
		Use:   "new FILE",
		Short: "Write an empty sheet",
		Args:  cobra.ExactArgs(1),
		RunE:  runNew,
	}
	newCmd.Flags().Var(&sheetSize, "size", "Sheet size as ROWSxCOLS")

	setCmd := &cobra.Command{
		Use:   "set FILE COORD VALUE",
		Short: "Set one cell and save the file",
		Args:  cobra.ExactArgs(3),
		RunE:  runSet,
	}
	setCmd.Flags().StringVarP(&contentType, "type", "t", "text", "Content type: text, numeric, formula or empty")

	getCmd := &cobra.Command{
		Use:   "get FILE COORD",
		Short: "Show the raw content and type of a cell",
		Args:  cobra.ExactArgs(2),
		RunE:  runGet,
	}

	printCmd := &cobra.Command{
		Use:   "print FILE FROM [TO]",
		Short: "Print the raw contents of a region",
		Long:  "Print the raw contents of a region given as two corners (A1 C3) or one range (A1:C3).",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  runPrint,
	}

	infoCmd := &cobra.Command{
		Use:   "info FILE",
		Short: "Show sheet size and content counts",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	exportCmd := &cobra.Command{
		Use:   "export FILE OUTPUT.xlsx",
		Short: "Convert an S2V file to an Excel workbook",
		Args:  cobra.ExactArgs(2),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&xlsxSheet, "sheet", s2v.DefaultSheetName, "Worksheet name")

	importCmd := &cobra.Command{
		Use:   "import INPUT.xlsx FILE",
		Short: "Convert an Excel worksheet to an S2V file",
		Args:  cobra.ExactArgs(2),
		RunE:  runImport,
	}
	importCmd.Flags().StringVar(&xlsxSheet, "sheet", s2v.DefaultSheetName, "Worksheet name")

	shellCmd := &cobra.Command{
		Use:   "shell [FILE]",
		Short: "Start an interactive session",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShell,
	}

	rootCmd.AddCommand(newCmd, setCmd, getCmd, printCmd, infoCmd, exportCmd, importCmd, shellCmd)
	return rootCmd
}

func options() s2v.Options {
	return s2v.Options{
		Encoding: encodingName,
		Storage:  string(storageKind),
	}
}

func openSheet(path string) (*s2v.Spreadsheet, error) {
	sheet, err := s2v.Open(path, options())
	if err != nil {
		return nil, err
	}
	logger.Debug("opened sheet", "path", path, "rows", sheet.Rows(), "cols", sheet.Cols(), "storage", sheet.StorageKind())
	return sheet, nil
}

func runNew(cmd *cobra.Command, args []string) error {
	sheet, err := s2v.New(sheetSize.rows, sheetSize.cols)
	if err != nil {
		return err
	}
	if err := s2v.Save(sheet, args[0], options()); err != nil {
		return fmt.Errorf("failed to write sheet: %w", err)
	}
	logger.Info("created sheet", "path", args[0], "size", sheetSize.String())
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	path, coord, value := args[0], args[1], args[2]

	kind, err := models.ParseContentType(contentType)
	if err != nil {
		return err
	}
	content, err := parseContent(kind, value)
	if err != nil {
		return err
	}

	sheet, err := openSheet(path)
	if err != nil {
		return err
	}
	if err := sheet.SetCellAt(coord, content); err != nil {
		return err
	}
	if err := s2v.Save(sheet, path, options()); err != nil {
		return fmt.Errorf("failed to write sheet: %w", err)
	}
	logger.Debug("set cell", "path", path, "coord", coord, "type", kind)
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	sheet, err := openSheet(args[0])
	if err != nil {
		return err
	}
	cell, err := sheet.CellAt(args[1])
	if err != nil {
		return err
	}
	printCell(cmd.OutOrStdout(), cell)
	return nil
}

func runPrint(cmd *cobra.Command, args []string) error {
	r1, c1, r2, c2, err := parseRegion(args[1:])
	if err != nil {
		return err
	}

	sheet, err := openSheet(args[0])
	if err != nil {
		return err
	}
	return sheet.PrintRegion(cmd.OutOrStdout(), r1, c1, r2, c2)
}

func runInfo(cmd *cobra.Command, args []string) error {
	sheet, err := openSheet(args[0])
	if err != nil {
		return err
	}
	printInfo(cmd.OutOrStdout(), sheet)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	sheet, err := openSheet(args[0])
	if err != nil {
		return err
	}
	if err := s2v.ExportXLSX(sheet, args[1], s2v.XLSXOptions{SheetName: xlsxSheet}); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	logger.Info("exported sheet", "from", args[0], "to", args[1])
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	sheet, err := s2v.ImportXLSX(args[0], s2v.XLSXOptions{SheetName: xlsxSheet})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	if err := s2v.Save(sheet, args[1], options()); err != nil {
		return fmt.Errorf("failed to write sheet: %w", err)
	}
	logger.Info("imported sheet", "from", args[0], "to", args[1], "rows", sheet.Rows(), "cols", sheet.Cols())
	return nil
}

func runShell(cmd *cobra.Command, args []string) error {
	sess := &Session{
		Options: options(),
		Out:     cmd.OutOrStdout(),
		Logger:  logger,
	}
	if len(args) == 1 {
		if err := sess.load(args[0]); err != nil {
			return err
		}
	}

	if isTerminal(cmd.InOrStdin()) {
		runPrompt(sess)
		return nil
	}
	return runScript(sess, cmd.InOrStdin())
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// errorLine formats a recoverable command error for the session output.
func errorLine(err error) string {
	var fe *s2v.FormatError
	if errors.As(err, &fe) {
		return "Format error: " + fe.Error()
	}
	return "Error: " + err.Error()
}
