package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nemecec/rs485"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List and classify available serial ports",
	Long: `List all serial ports known to the system.

Each port is classified so half-duplex bus endpoints can be told apart
from virtual and wireless devices:
- symlink: the path is an alias for another device node
- pty: the path is (or resolves to) a pseudo-terminal
- bluetooth: the port is backed by a Bluetooth link

Use the exclude flags to filter the listing down to physical ports.`,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := rs485.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		excludePTY, _ := cmd.Flags().GetBool("exclude-pty")
		excludeBT, _ := cmd.Flags().GetBool("exclude-bluetooth")
		tableFormat, _ := cmd.Flags().GetBool("table")

		filtered := ports[:0]
		for _, p := range ports {
			if excludePTY && p.IsPTY {
				continue
			}
			if excludeBT && p.IsBluetooth {
				continue
			}
			filtered = append(filtered, p)
		}

		if len(filtered) == 0 {
			fmt.Println("No serial ports found")
			return
		}

		if tableFormat {
			renderTable(filtered)
		} else {
			renderSimple(filtered)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
	listCmd.Flags().Bool("exclude-pty", false, "Hide pseudo-terminals")
	listCmd.Flags().Bool("exclude-bluetooth", false, "Hide Bluetooth-backed ports")
}

// renderTable renders the port list in a styled static table format
func renderTable(ports []rs485.PortInfo) {
	fmt.Printf("Found %d serial port(s):\n\n", len(ports))

	pathWidth := 24
	flagWidth := 8
	descWidth := 28

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240")).
		PaddingBottom(1)

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s",
		pathWidth, "Port",
		flagWidth, "Symlink",
		flagWidth, "PTY",
		flagWidth, "BT",
		descWidth, "Device")
	fmt.Println(headerStyle.Render(header))

	for _, p := range ports {
		row := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s",
			pathWidth, p.Path,
			flagWidth, yesNo(p.IsSymlink),
			flagWidth, yesNo(p.IsPTY),
			flagWidth, yesNo(p.IsBluetooth),
			descWidth, describePort(p))
		fmt.Println(cellStyle.Render(row))
	}
}

// renderSimple renders the port list in simple text format
func renderSimple(ports []rs485.PortInfo) {
	for _, p := range ports {
		flags := ""
		if p.IsSymlink {
			flags += " [symlink]"
		}
		if p.IsPTY {
			flags += " [pty]"
		}
		if p.IsBluetooth {
			flags += " [bluetooth]"
		}
		fmt.Printf("%s%s\n", p.Path, flags)
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func describePort(p rs485.PortInfo) string {
	switch {
	case p.IsUSB && p.Product != "":
		return fmt.Sprintf("%s (%s:%s)", p.Product, p.VID, p.PID)
	case p.IsUSB:
		return fmt.Sprintf("USB %s:%s", p.VID, p.PID)
	case p.IsBluetooth:
		return "Bluetooth serial"
	case p.IsPTY:
		return "Pseudo-terminal"
	default:
		return "Serial port"
	}
}
