package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "carelink.db"

	appDirName = "carelink"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Add       string `toml:"add"`
	Edit      string `toml:"edit"`
	Toggle    string `toml:"toggle"`
	Delete    string `toml:"delete"`
	Open      string `toml:"open"`
	New       string `toml:"new"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
	NextField string `toml:"next_field"`
	PrevField string `toml:"prev_field"`
	Tasks     string `toml:"tasks"`
	Meds      string `toml:"meds"`
	Notes     string `toml:"notes"`
	Dashboard string `toml:"dashboard"`
}

type Caregiver struct {
	Name string `toml:"name"`
	Role string `toml:"role"`
}

type Patient struct {
	Name             string   `toml:"name"`
	Meta             string   `toml:"meta"`
	Conditions       []string `toml:"conditions"`
	EmergencyContact string   `toml:"emergency_contact"`
	EmergencyPhone   string   `toml:"emergency_phone"`
}

type Config struct {
	DataDir        string    `toml:"data_dir"`
	StorageBackend string    `toml:"storage_backend"`
	Caregiver      Caregiver `toml:"caregiver"`
	Patient        Patient   `toml:"patient"`
	Keys           Keymap    `toml:"keys"`
}

// ResolveConfigPath returns the config file location under the user config
// directory, falling back to the working directory when that is unknown.
func ResolveConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = "file"
	}
	if cfg.Caregiver.Name == "" {
		cfg.Caregiver.Name = defaultConfig().Caregiver.Name
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, appDirName)
}

func defaultConfig() Config {
	return Config{
		DataDir:        defaultDataDir(),
		StorageBackend: "file",
		Caregiver: Caregiver{
			Name: "Jennifer Chen",
			Role: "Primary Caregiver",
		},
		Patient: Patient{
			Name:             "Margaret Chen",
			Meta:             "Mother, age 78",
			Conditions:       []string{"Type 2 Diabetes", "Hypertension"},
			EmergencyContact: "Jennifer Chen",
			EmergencyPhone:   "(555) 987-6543",
		},
		Keys: Keymap{
			Quit:      "q",
			Up:        "k",
			Down:      "j",
			Add:       "a",
			Edit:      "e",
			Toggle:    " ",
			Delete:    "d",
			Open:      "enter",
			New:       "n",
			Confirm:   "enter",
			Cancel:    "esc",
			NextField: "tab",
			PrevField: "shift+tab",
			Tasks:     "t",
			Meds:      "m",
			Notes:     "o",
			Dashboard: "b",
		},
	}
}
