package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/team --output domain/team --outpkg teammock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/player --output domain/player --outpkg playermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/user --output domain/user --outpkg usermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/draw --output domain/draw --outpkg drawmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name FootballProvider --dir ../usecase --output usecase --outpkg usecasemock --filename football_provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name MemberSource --dir ../usecase --output usecase --outpkg usecasemock --filename member_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name DrawSource --dir ../usecase --output usecase --outpkg usecasemock --filename draw_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ChatPublisher --dir ../usecase --output usecase --outpkg usecasemock --filename chat_publisher_mock.go
