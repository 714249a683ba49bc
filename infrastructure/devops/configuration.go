package devops

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"timekeeper.com/timekeeper/utils"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// DatabasesParameter is the SSM parameter holding the yaml list of database servers.
const DatabasesParameter = "databases"

type DBEntry struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// GetDSN builds a mysql DSN for dbname on this server. Port 3306 is assumed
// when the host has none.
func (db DBEntry) GetDSN(dbname string) string {
	host := db.Host
	if !strings.Contains(host, ":") {
		host = host + ":3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", db.Username, db.Password, host, dbname)
}

// FindDatabase returns the entry with the given name, ignoring case.
func FindDatabase(entries []DBEntry, name string) (*DBEntry, bool) {
	entry := utils.Find(entries, func(e DBEntry) bool {
		return strings.EqualFold(e.Name, name)
	})
	return entry, entry != nil
}

// ParseDBEntries decodes the parameter value.
func ParseDBEntries(value string) ([]DBEntry, error) {
	var parsed []DBEntry
	if err := yaml.Unmarshal([]byte(value), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	return parsed, nil
}

var (
	once    sync.Once
	dbList  []DBEntry
	loadErr error
)

// LoadDBConfig reads the databases parameter once per process.
func LoadDBConfig(ctx context.Context) ([]DBEntry, error) {
	once.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(DatabasesParameter),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}
		if out.Parameter == nil || out.Parameter.Value == nil {
			loadErr = fmt.Errorf("parameter %s is empty", DatabasesParameter)
			return
		}

		dbList, loadErr = ParseDBEntries(*out.Parameter.Value)
	})

	return dbList, loadErr
}
