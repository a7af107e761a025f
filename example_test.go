package linefile_test

import (
	"fmt"

	"github.com/lanrat/linefile"
	"github.com/lanrat/linefile/vfs"
)

func Example() {
	// an in-memory filesystem keeps the example self-contained;
	// omit Config.FS to work against the real disk
	fsys := vfs.NewMem()
	fsys.WriteFile("/data/fruit.txt", []byte("banana\norange\napple\n"), 0o644)

	config := linefile.DefaultConfig()
	config.FS = fsys

	manager, err := linefile.NewStreamManager(linefile.NewFileSource("/data/fruit.txt"), config)
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := manager.Insert(1, "kiwi"); err != nil {
		fmt.Println(err)
		return
	}
	if _, err := manager.RemoveMatch("orange"); err != nil {
		fmt.Println(err)
		return
	}

	lines, err := manager.Load()
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	// Output:
	// banana
	// kiwi
	// apple
}
