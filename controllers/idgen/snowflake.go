package idgen

import (
	"log"
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

// Init builds the process-wide snowflake node. The node id comes from
// SNOWFLAKE_NODE so two instances behind a load balancer never collide.
func Init() {
	nodeID := int64(1)
	if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			nodeID = n
		}
	}

	var err error
	node, err = snowflake.NewNode(nodeID)
	if err != nil {
		log.Fatalf("Failed to init Snowflake: %v", err)
	}
}

func GenerateID() int64 {
	return node.Generate().Int64()
}

// RowID returns a string id for ephemeral batch rows. Never sent upstream,
// only used to key merges while detail/quote requests are in flight.
func RowID() string {
	return node.Generate().String()
}
