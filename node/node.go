// Package node assembles the registry from its parts: storage, host
// ledger, entropy, event dispatching and the HTTP surface.
package node

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/shenzhen-arrom/kitties/api"
	cfg "github.com/shenzhen-arrom/kitties/config"
	"github.com/shenzhen-arrom/kitties/database"
	dbm "github.com/shenzhen-arrom/kitties/database/db"
	_ "github.com/shenzhen-arrom/kitties/database/leveldb"
	"github.com/shenzhen-arrom/kitties/database/orm"
	_ "github.com/shenzhen-arrom/kitties/database/sqldb"
	"github.com/shenzhen-arrom/kitties/event"
	"github.com/shenzhen-arrom/kitties/kitty"
	"github.com/shenzhen-arrom/kitties/ledger"
	logmod "github.com/shenzhen-arrom/kitties/log"
)

const logModule = "node"

type Node struct {
	config *cfg.Config

	db         dbm.DB
	sqlDB      dbm.SQLDB
	ledger     *ledger.MemLedger
	dispatcher *event.Dispatcher
	registry   *kitty.Registry
	api        *api.Server

	eventSub *event.Subscription
}

func NewNode(config *cfg.Config) *Node {
	if config.LogFile {
		logmod.InitLogFile(config)
	}

	node := &Node{
		config:     config,
		dispatcher: event.NewDispatcher(),
	}

	var store kitty.Store
	switch config.DBBackend {
	case dbm.LevelDBBackendStr, dbm.GoLevelDBBackendStr, dbm.MemDBBackendStr:
		node.db = dbm.NewDB("registry", config.DBBackend, config.DBDir())
		store = database.NewRegistryStore(node.db)
	case dbm.SqliteDBBackendStr:
		node.sqlDB = dbm.NewSQLDB("registry", config.DBBackend, config.DBDir())
		initDatabaseTable(node.sqlDB)
		store = database.NewSQLRegistryStore(node.sqlDB)
	case dbm.MySQLDBBackendStr:
		node.sqlDB = dbm.NewSQLDB(config.DBDSN, config.DBBackend, config.DBDir())
		initDatabaseTable(node.sqlDB)
		store = database.NewSQLRegistryStore(node.sqlDB)
	default:
		exit(fmt.Sprintf("param db_backend [%v] is invalid", config.DBBackend))
	}

	node.ledger = ledger.NewMemLedger(config.Ledger.ExistentialDeposit)
	for _, account := range config.Ledger.GenesisAccounts {
		node.ledger.Deposit(account.Account, account.Balance)
	}

	entropy := newChainEntropy(config.ChainID)
	node.registry = kitty.NewRegistry(store, node.ledger, entropy, node.dispatcher, config.Registry.Stake, kitty.ID(config.Registry.MaxIndex))
	node.api = api.NewServer(node.registry, config)
	return node
}

func initDatabaseTable(db dbm.SQLDB) {
	db.Db().AutoMigrate(&orm.Kitty{}, &orm.RegistryState{})
}

// Run starts the event log stream and serves the API until the process
// exits.
func (n *Node) Run() {
	sub, err := n.dispatcher.Subscribe(kitty.CreatedEvent{}, kitty.TransferredEvent{}, kitty.ListedEvent{})
	if err != nil {
		exit("subscribe registry events: " + err.Error())
	}
	n.eventSub = sub
	go n.eventLoop()

	log.WithFields(log.Fields{
		"module":   logModule,
		"chain_id": n.config.ChainID,
		"stake":    n.config.Registry.Stake,
	}).Info("registry node started")

	n.api.Run()
}

// Stop releases the node's resources.
func (n *Node) Stop() {
	if n.eventSub != nil {
		n.eventSub.Unsubscribe()
	}
	n.dispatcher.Stop()
	if n.db != nil {
		n.db.Close()
	}
	if n.sqlDB != nil {
		n.sqlDB.Db().Close()
	}
}

// eventLoop mirrors every committed domain event into the log, the
// observable counterpart of the host's event sink.
func (n *Node) eventLoop() {
	for msg := range n.eventSub.Chan() {
		switch ev := msg.Data.(type) {
		case kitty.CreatedEvent:
			log.WithFields(log.Fields{"module": logModule, "owner": ev.Owner, "kitty_id": ev.ID}).Info("kitty created")
		case kitty.TransferredEvent:
			log.WithFields(log.Fields{"module": logModule, "from": ev.From, "to": ev.To, "kitty_id": ev.ID}).Info("kitty transferred")
		case kitty.ListedEvent:
			fields := log.Fields{"module": logModule, "owner": ev.Owner, "kitty_id": ev.ID}
			if ev.Price != nil {
				fields["price"] = *ev.Price
			}
			log.WithFields(fields).Info("kitty listed")
		}
	}
}

func exit(msg string) {
	log.WithFields(log.Fields{"module": logModule}).Error(msg)
	os.Exit(1)
}
