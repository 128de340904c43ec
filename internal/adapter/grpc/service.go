package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the wallet service
const ServiceName = "walletflow.v1.WalletFlowService"

// WalletFlowServiceServer is the server API for the WalletFlowService service.
// Every method exchanges google.protobuf.Struct messages whose fields follow the JSON views
// declared in this package.
type WalletFlowServiceServer interface {
	CreateWallet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetWallet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListWallets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateWallet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteWallet(context.Context, *structpb.Struct) (*structpb.Struct, error)

	CreateTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTransactions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)

	OpenStock(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetStock(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListStocks(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateStock(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteStock(context.Context, *structpb.Struct) (*structpb.Struct, error)

	Transfer(context.Context, *structpb.Struct) (*structpb.Struct, error)

	CreateAsset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAsset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAssets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateAsset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteAsset(context.Context, *structpb.Struct) (*structpb.Struct, error)

	CreateBudgetPlan(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBudgetPlan(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListBudgetPlans(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateBudgetPlan(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteBudgetPlan(context.Context, *structpb.Struct) (*structpb.Struct, error)

	CreateNote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetNote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListNotes(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateNote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteNote(context.Context, *structpb.Struct) (*structpb.Struct, error)

	CreateTask(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTask(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTasks(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateTask(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ToggleTask(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteTask(context.Context, *structpb.Struct) (*structpb.Struct, error)

	GetPortfolioTotals(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTransactionTotals(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetWalletTotals(context.Context, *structpb.Struct) (*structpb.Struct, error)

	GetMarketQuote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetMarketSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(WalletFlowServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

var unaryMethods = []struct {
	name string
	call unaryMethod
}{
	{"CreateWallet", WalletFlowServiceServer.CreateWallet},
	{"GetWallet", WalletFlowServiceServer.GetWallet},
	{"ListWallets", WalletFlowServiceServer.ListWallets},
	{"UpdateWallet", WalletFlowServiceServer.UpdateWallet},
	{"DeleteWallet", WalletFlowServiceServer.DeleteWallet},
	{"CreateTransaction", WalletFlowServiceServer.CreateTransaction},
	{"GetTransaction", WalletFlowServiceServer.GetTransaction},
	{"ListTransactions", WalletFlowServiceServer.ListTransactions},
	{"UpdateTransaction", WalletFlowServiceServer.UpdateTransaction},
	{"DeleteTransaction", WalletFlowServiceServer.DeleteTransaction},
	{"OpenStock", WalletFlowServiceServer.OpenStock},
	{"GetStock", WalletFlowServiceServer.GetStock},
	{"ListStocks", WalletFlowServiceServer.ListStocks},
	{"UpdateStock", WalletFlowServiceServer.UpdateStock},
	{"DeleteStock", WalletFlowServiceServer.DeleteStock},
	{"Transfer", WalletFlowServiceServer.Transfer},
	{"CreateAsset", WalletFlowServiceServer.CreateAsset},
	{"GetAsset", WalletFlowServiceServer.GetAsset},
	{"ListAssets", WalletFlowServiceServer.ListAssets},
	{"UpdateAsset", WalletFlowServiceServer.UpdateAsset},
	{"DeleteAsset", WalletFlowServiceServer.DeleteAsset},
	{"CreateBudgetPlan", WalletFlowServiceServer.CreateBudgetPlan},
	{"GetBudgetPlan", WalletFlowServiceServer.GetBudgetPlan},
	{"ListBudgetPlans", WalletFlowServiceServer.ListBudgetPlans},
	{"UpdateBudgetPlan", WalletFlowServiceServer.UpdateBudgetPlan},
	{"DeleteBudgetPlan", WalletFlowServiceServer.DeleteBudgetPlan},
	{"CreateNote", WalletFlowServiceServer.CreateNote},
	{"GetNote", WalletFlowServiceServer.GetNote},
	{"ListNotes", WalletFlowServiceServer.ListNotes},
	{"UpdateNote", WalletFlowServiceServer.UpdateNote},
	{"DeleteNote", WalletFlowServiceServer.DeleteNote},
	{"CreateTask", WalletFlowServiceServer.CreateTask},
	{"GetTask", WalletFlowServiceServer.GetTask},
	{"ListTasks", WalletFlowServiceServer.ListTasks},
	{"UpdateTask", WalletFlowServiceServer.UpdateTask},
	{"ToggleTask", WalletFlowServiceServer.ToggleTask},
	{"DeleteTask", WalletFlowServiceServer.DeleteTask},
	{"GetPortfolioTotals", WalletFlowServiceServer.GetPortfolioTotals},
	{"GetTransactionTotals", WalletFlowServiceServer.GetTransactionTotals},
	{"GetWalletTotals", WalletFlowServiceServer.GetWalletTotals},
	{"GetMarketQuote", WalletFlowServiceServer.GetMarketQuote},
	{"GetMarketSummary", WalletFlowServiceServer.GetMarketSummary},
}

// WalletFlowService_ServiceDesc is the grpc.ServiceDesc for the WalletFlowService service
var WalletFlowService_ServiceDesc = newServiceDesc()

func newServiceDesc() grpc.ServiceDesc {
	desc := grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*WalletFlowServiceServer)(nil),
		Streams:     []grpc.StreamDesc{},
		Metadata:    "walletflow/v1/walletflow.proto",
	}
	for _, m := range unaryMethods {
		desc.Methods = append(desc.Methods, grpc.MethodDesc{
			MethodName: m.name,
			Handler:    unaryHandler(m.name, m.call),
		})
	}
	return desc
}

func unaryHandler(name string, call unaryMethod) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + name
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(WalletFlowServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(WalletFlowServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// RegisterWalletFlowServiceServer registers srv on s
func RegisterWalletFlowServiceServer(s grpc.ServiceRegistrar, srv WalletFlowServiceServer) {
	s.RegisterService(&WalletFlowService_ServiceDesc, srv)
}
