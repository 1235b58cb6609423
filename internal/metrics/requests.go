package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameTotalListRequests   = "total_list_requests"
	NameTotalCreateRequests = "total_create_requests"
	NameTotalUpdateRequests = "total_update_requests"
	NameTotalDeleteRequests = "total_delete_requests"
)

var TotalListRequests = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameTotalListRequests,
		Help:      "Total task list requests",
		Namespace: Namespace,
	},
)

var TotalCreateRequests = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameTotalCreateRequests,
		Help:      "Total task create requests",
		Namespace: Namespace,
	},
)

var TotalUpdateRequests = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameTotalUpdateRequests,
		Help:      "Total task status update requests",
		Namespace: Namespace,
	},
)

var TotalDeleteRequests = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameTotalDeleteRequests,
		Help:      "Total task delete requests",
		Namespace: Namespace,
	},
)
