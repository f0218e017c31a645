package menu

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"lsp-search-service/internal/datagenerators"
	"lsp-search-service/internal/draftorders"
	"lsp-search-service/internal/models"
	"lsp-search-service/internal/orchestrator"
)

// Option представляет пункт меню
type Option struct {
	Key         string
	Description string
	Action      func() error
}

// Menu управляет интерактивным меню поиска логистики
type Menu struct {
	Title        string
	Options      []Option
	Reader       *bufio.Reader
	Orchestrator *orchestrator.Orchestrator
	DraftOrders  *draftorders.Service
}

// NewMenu создаёт новое меню
func NewMenu(orch *orchestrator.Orchestrator, draftOrders *draftorders.Service) *Menu {
	menu := &Menu{
		Title:        "=== LSP Search Console ===",
		Reader:       bufio.NewReader(strings.NewReader("")), // будет заменён на os.Stdin
		Orchestrator: orch,
		DraftOrders:  draftOrders,
	}

	options := []Option{
		{"g", "Generate and create a draft order on the backend", func() error {
			draft := datagenerators.GenerateDraftOrder()
			created, err := menu.DraftOrders.CreateDraftOrder(context.Background(), draft)
			if err != nil {
				return err
			}
			log.Printf("Created draft order: %s", created.ID)
			return menu.Orchestrator.LoadDraftOrder(context.Background(), created.ID)
		}},
		{"l", "Load an existing draft order by id", func() error {
			fmt.Print("Draft order id: ")
			input, _ := menu.Reader.ReadString('\n')
			draftID := strings.TrimSpace(input)
			if draftID == "" {
				return fmt.Errorf("draft order id is required")
			}
			return menu.Orchestrator.LoadDraftOrder(context.Background(), draftID)
		}},
		{"a", "Search ad-hoc (incomplete draft, defaults substituted)", func() error {
			return menu.Orchestrator.UseDraftOrder(datagenerators.GenerateDraftOrder_Bare())
		}},
		{"s", "Trigger logistics search", func() error {
			if err := menu.Orchestrator.TriggerSearch(context.Background()); err != nil {
				return err
			}
			menu.printResults()
			return nil
		}},
		{"h", "Toggle hyperlocal filter", func() error {
			if err := menu.Orchestrator.SetDeliveryModeFilter(models.DeliveryModeHyperlocal); err != nil {
				return err
			}
			menu.printResults()
			return nil
		}},
		{"i", "Toggle intercity filter", func() error {
			if err := menu.Orchestrator.SetDeliveryModeFilter(models.DeliveryModeIntercity); err != nil {
				return err
			}
			menu.printResults()
			return nil
		}},
		{"p", "Toggle price sort ascending", func() error {
			if err := menu.Orchestrator.SetPriceSort(models.PriceSortAsc); err != nil {
				return err
			}
			menu.printResults()
			return nil
		}},
		{"d", "Toggle price sort descending", func() error {
			if err := menu.Orchestrator.SetPriceSort(models.PriceSortDesc); err != nil {
				return err
			}
			menu.printResults()
			return nil
		}},
		{"r", "Show current results", func() error {
			menu.printResults()
			return nil
		}},
		{"b", "Book a quote by number", func() error {
			quotes := menu.Orchestrator.Results()
			if len(quotes) == 0 {
				fmt.Println("No quotes to book.")
				return nil
			}
			menu.printResults()
			fmt.Print("Select quote number: ")
			input, _ := menu.Reader.ReadString('\n')
			idxStr := strings.TrimSpace(input)
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx < 0 || idx >= len(quotes) {
				return fmt.Errorf("invalid selection: %s", idxStr)
			}
			return menu.Orchestrator.SelectQuote(&quotes[idx])
		}},
		{"x", "Reset search screen", func() error {
			menu.Orchestrator.Reset()
			return nil
		}},
	}

	menu.Options = options
	return menu
}

// SetReader задаёт источник ввода (os.Stdin в продюсере, строка в тестах)
func (m *Menu) SetReader(reader *bufio.Reader) {
	m.Reader = reader
}

// Run запускает цикл меню
func (m *Menu) Run() {
	for {
		snapshot := m.Orchestrator.Snapshot()
		fmt.Println("\n" + m.Title)
		fmt.Printf("state=%s draft_order=%s filter=%q sort=%q\n",
			snapshot.State, snapshot.DraftOrderID, snapshot.DeliveryModeFilter, snapshot.PriceSort)
		for _, opt := range m.Options {
			fmt.Printf("%s - %s\n", opt.Key, opt.Description)
		}
		fmt.Println("exit - Quit program")
		fmt.Print("Choose option: ")

		input, err := m.Reader.ReadString('\n')
		if err != nil {
			return
		}

		command := strings.TrimSpace(input)
		if command == "exit" {
			return
		}

		if !m.dispatch(command) {
			fmt.Printf("Unknown command: %s\n", command)
		}
	}
}

// dispatch выполняет действие пункта меню; возвращает false для неизвестной команды
func (m *Menu) dispatch(command string) bool {
	for _, opt := range m.Options {
		if opt.Key == command {
			if err := opt.Action(); err != nil {
				log.Printf("Command %q failed: %v", command, err)
			}
			return true
		}
	}
	return false
}

// printResults печатает агрегированные предложения
func (m *Menu) printResults() {
	snapshot := m.Orchestrator.Snapshot()
	if snapshot.Error != "" {
		fmt.Printf("Error: %s\n", snapshot.Error)
		return
	}
	if len(snapshot.Quotes) == 0 {
		fmt.Println("No providers found.")
		return
	}

	for i, quote := range snapshot.Quotes {
		fmt.Printf("%d: %-30s mode=%-18s shipping=%8.2f rto=%8.2f total=%8.2f\n",
			i, quote.Name, quote.DeliveryMode,
			quote.ShippingCharges, quote.RTOCharges, quote.TotalCharges())
	}
}
