package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mr-c/macsyfinder/registry"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "List, search, and install model packages",
	Long: `registry manages model packages published to the remote object
store: a local SQLite catalog tracks what is installed, and installs
verify each package's checksum and, when a trusted key is configured,
its signed manifest.`,
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed model packages",
	RunE:  runRegistryList,
}

var registrySearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search installed model packages by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegistrySearch,
}

var registryInstallCmd = &cobra.Command{
	Use:   "install <package-name> [package-name...]",
	Short: "Install one or more model packages from the remote registry",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRegistryInstall,
}

func init() {
	registryCmd.AddCommand(registryListCmd)
	registryCmd.AddCommand(registrySearchCmd)
	registryCmd.AddCommand(registryInstallCmd)
}

func openCatalog() (*registry.Catalog, error) {
	return registry.OpenCatalog(cfg.Registry.CatalogPath)
}

func printPackages(pkgs []*registry.ModelPackage) {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tSIGNATURE\tINSTALLED AT\tPATH")
	for _, p := range pkgs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.Version, p.Signature, p.InstalledAt.Format("2006-01-02 15:04:05"), p.LocalPath)
	}
	w.Flush()
}

func runRegistryList(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog()
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer cat.Close()

	pkgs, err := cat.List()
	if err != nil {
		return fmt.Errorf("list catalog: %w", err)
	}
	printPackages(pkgs)
	return nil
}

func runRegistrySearch(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog()
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer cat.Close()

	pkgs, err := cat.Search(args[0])
	if err != nil {
		return fmt.Errorf("search catalog: %w", err)
	}
	printPackages(pkgs)
	return nil
}

func runRegistryInstall(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog()
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer cat.Close()

	remote, err := registry.NewS3Remote(cfg.Registry.Bucket)
	if err != nil {
		return fmt.Errorf("connect to remote registry: %w", err)
	}

	var trustedKey []byte
	if cfg.Registry.TrustedKeyPath != "" {
		trustedKey, err = os.ReadFile(cfg.Registry.TrustedKeyPath)
		if err != nil {
			return fmt.Errorf("read trusted key: %w", err)
		}
	}

	installed, err := registry.InstallAll(remote, cat, args, cfg.Paths.ModelsDir, trustedKey)
	if err != nil {
		return fmt.Errorf("install: %w", err)
	}
	printPackages(installed)
	return nil
}
