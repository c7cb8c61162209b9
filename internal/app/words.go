package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/daltonlim/articulate/internal/domain"
)

// DefaultWordBank returns the built-in word pools, one per board category.
// Wildcard has no pool of its own; wildcard draws resolve to a random
// category.
func DefaultWordBank() domain.WordBank {
	return domain.WordBank{
		domain.CategoryObject: {
			"telescope", "anchor", "umbrella", "compass", "lantern",
			"typewriter", "hourglass", "stethoscope", "accordion", "chandelier",
			"scissors", "backpack", "kettle", "hammock", "binoculars",
			"wheelbarrow", "harmonica", "snorkel", "stapler", "corkscrew",
		},
		domain.CategoryAction: {
			"juggling", "whistling", "limbo", "parkour", "somersault",
			"moonwalk", "knitting", "fencing", "yodeling", "abseiling",
			"tiptoeing", "applauding", "shivering", "sprinting", "hitchhiking",
			"eavesdropping", "curtsying", "stargazing", "arm wrestling", "beatboxing",
		},
		domain.CategoryWorld: {
			"Sahara Desert", "Great Barrier Reef", "Mount Everest", "Amazon River", "Iceland",
			"Panama Canal", "Stonehenge", "Galapagos Islands", "Eiffel Tower", "Dead Sea",
			"Machu Picchu", "Niagara Falls", "Bermuda Triangle", "Antarctica", "Silk Road",
			"Great Wall of China", "Mariana Trench", "Easter Island", "Vesuvius", "Timbuktu",
		},
		domain.CategoryPerson: {
			"Marie Curie", "Charlie Chaplin", "Leonardo da Vinci", "Cleopatra", "Elvis Presley",
			"Amelia Earhart", "Albert Einstein", "Frida Kahlo", "William Shakespeare", "Genghis Khan",
			"Serena Williams", "Isaac Newton", "Joan of Arc", "Muhammad Ali", "Florence Nightingale",
			"Harry Houdini", "Rosa Parks", "Julius Caesar", "David Attenborough", "Wolfgang Mozart",
		},
		domain.CategoryRandom: {
			"deja vu", "gravity", "echo", "sarcasm", "jet lag",
			"hiccups", "camouflage", "procrastination", "goosebumps", "karaoke",
			"superstition", "mirage", "insomnia", "charades", "hibernation",
			"stage fright", "small talk", "white noise", "time zone", "leap year",
		},
		domain.CategoryNature: {
			"avalanche", "coral", "thunderstorm", "glacier", "cactus",
			"firefly", "tornado", "geyser", "driftwood", "monsoon",
			"chameleon", "tide pool", "redwood", "aurora", "quicksand",
			"beehive", "tumbleweed", "waterfall", "fog", "meteor shower",
		},
	}
}

// LoadWordBank reads a word bank from a JSON file mapping category labels to
// word lists, in the same shape the default bank uses.
func LoadWordBank(path string) (domain.WordBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word bank: %w", err)
	}

	var bank domain.WordBank
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parse word bank: %w", err)
	}
	if !bank.HasWords() {
		return nil, domain.ErrEmptyWordBank
	}
	return bank, nil
}
