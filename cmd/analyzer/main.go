// Command analyzer is the interactive air quality dataset browser. It
// loads sensor readings from the configured CSV or XLSX export and serves
// a text menu of cross-tabulated concentration reports with toggleable
// zip-code and time-of-day filters.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"aircli/internal/config"
	"aircli/internal/dataset"
	"aircli/internal/errors"
	"aircli/internal/infrastructure"
	"aircli/pkg/contracts/domain"
)

var menuOptions = []string{
	"Print Average Particulate Concentration by Zip Code and Time",
	"Print Minimum Particulate Concentration by Zip Code and Time",
	"Print Maximum Particulate Concentration by Zip Code and Time",
	"Print Min/Avg/Max by Zip Code",
	"Print Min/Avg/Max by Time",
	"Adjust Zip Code Filters",
	"Adjust Time Filters",
	"Load Data",
	"Quit",
}

func main() {
	file := flag.String("file", "", "data file name inside the data directory (defaults to the configured file)")
	format := flag.String("format", "csv", "data file format: csv | xlsx")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Keep structured logs out of the interactive session.
	if cfg.Logging.Output == "console" {
		cfg.Logging.Output = "file"
		cfg.Logging.FilePath = "logs/analyzer.log"
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	dataFile := cfg.DataFilePath()
	if *file != "" {
		dataFile = cfg.ResolveDataPath(*file)
	}

	app := &application{
		in:       bufio.NewScanner(os.Stdin),
		logger:   logger,
		cfg:      cfg,
		dataFile: dataFile,
		format:   strings.ToLower(*format),
	}
	app.run()
}

type application struct {
	in       *bufio.Scanner
	logger   *slog.Logger
	cfg      *config.Config
	dataFile string
	format   string
	ds       *dataset.DataSet
}

func (a *application) run() {
	username := a.prompt("Hello, please enter your name: ")
	fmt.Printf("Welcome, %s, to the Air Quality database.\n", username)

	a.ds = a.promptDataSet()
	a.logger.Info("session started", slog.String("user", username))
	a.menu()
}

// promptDataSet asks for a header until one passes validation.
func (a *application) promptDataSet() *dataset.DataSet {
	for {
		header := a.prompt("Please enter a header: ")
		ds, err := dataset.New(header, a.logger, dataset.Config{
			Placeholder: a.cfg.Report.Placeholder,
		})
		if err == nil {
			return ds
		}
		fmt.Println("Please enter a string of 30 characters or less.")
	}
}

func (a *application) menu() {
	for {
		fmt.Println()
		fmt.Println(a.ds.Header())
		printMenu()

		choice, err := strconv.Atoi(a.prompt("Please choose a number from the menu: "))
		if err != nil {
			fmt.Println("Please enter a number.")
			continue
		}

		switch choice {
		case 1:
			a.showCrossTable(domain.StatAvg)
		case 2:
			a.showCrossTable(domain.StatMin)
		case 3:
			a.showCrossTable(domain.StatMax)
		case 4:
			a.showFieldTable(domain.CategoryZipCode)
		case 5:
			a.showFieldTable(domain.CategoryTimeOfDay)
		case 6:
			a.manageFilters(domain.CategoryZipCode)
		case 7:
			a.manageFilters(domain.CategoryTimeOfDay)
		case 8:
			a.loadData()
		case 9:
			fmt.Println("Goodbye! Thank you for looking at the menu.")
			return
		default:
			fmt.Println("Sorry, your choice is not on the menu.")
		}
	}
}

func printMenu() {
	fmt.Println("Main Menu")
	for i, option := range menuOptions {
		fmt.Printf("%d: %s\n", i+1, option)
	}
}

func (a *application) loadData() {
	var (
		count int
		err   error
	)
	if a.format == "xlsx" || a.format == "excel" {
		count, err = a.ds.LoadExcel(a.dataFile, a.cfg.Data.ExcelSheet)
	} else {
		count, err = a.ds.LoadFile(a.dataFile)
	}
	if err != nil {
		a.logger.Error("load failed", slog.String("file", a.dataFile), slog.String("error", err.Error()))
		fmt.Printf("Could not load %s: %v\n", a.dataFile, err)
		return
	}
	fmt.Printf("%d lines loaded\n", count)
}

func (a *application) showCrossTable(stat domain.Stat) {
	if err := a.ds.WriteCrossTable(os.Stdout, stat); err != nil {
		a.report(err)
	}
}

func (a *application) showFieldTable(rows domain.Category) {
	if err := a.ds.WriteFieldTable(os.Stdout, rows); err != nil {
		a.report(err)
	}
}

// manageFilters lists the category's labels with their active state and
// toggles selections until a blank line.
func (a *application) manageFilters(cat domain.Category) {
	labels, err := a.ds.Labels(cat)
	if err != nil {
		a.report(err)
		return
	}
	for {
		active, err := a.ds.ActiveLabels(cat)
		if err != nil {
			a.report(err)
			return
		}
		activeSet := make(map[string]bool, len(active))
		for _, label := range active {
			activeSet[label] = true
		}

		fmt.Println("The following labels are in the dataset:")
		for i, label := range labels {
			state := "INACTIVE"
			if activeSet[label] {
				state = "ACTIVE"
			}
			fmt.Printf("%d: %-10s %s\n", i+1, label, state)
		}

		selection := a.prompt("Please select an item to toggle or enter a blank line when you are finished.")
		if selection == "" {
			return
		}
		index, err := strconv.Atoi(selection)
		if err != nil {
			fmt.Println("Please enter a number or a blank line.")
			continue
		}
		if index < 1 || index > len(labels) {
			fmt.Println("Please enter a number from the list.")
			continue
		}
		if err := a.ds.ToggleLabel(cat, labels[index-1]); err != nil {
			a.report(err)
		}
	}
}

func (a *application) report(err error) {
	if errors.IsEmptyDataset(err) {
		fmt.Println("Please load a dataset first.")
		return
	}
	fmt.Printf("Error: %v\n", err)
}

func (a *application) prompt(msg string) string {
	fmt.Print(msg)
	if !a.in.Scan() {
		// stdin closed; behave like quitting.
		fmt.Println()
		os.Exit(0)
	}
	return strings.TrimSpace(a.in.Text())
}
